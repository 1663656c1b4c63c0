package team

import (
	"context"
	"fmt"

	"github.com/northbeam-studio/studio-admin/internal/reconcile"
	"github.com/northbeam-studio/studio-admin/pkg/enums"
	"github.com/northbeam-studio/studio-admin/pkg/logger"
	"github.com/northbeam-studio/studio-admin/pkg/recordstore"
	"github.com/northbeam-studio/studio-admin/pkg/validation"
)

type repository interface {
	List(ctx context.Context) ([]Member, error)
	Create(ctx context.Context, input CreateInput) ([]Member, error)
	Update(ctx context.Context, id string, patch Patch) ([]Member, bool, error)
	Delete(ctx context.Context, id string) ([]Member, bool, error)
}

type linkReconciler interface {
	Reconcile(ctx context.Context, anchor enums.Anchor, anchorID string, desired []string, role string) (reconcile.Result, error)
}

// Service exposes team member operations.
type Service interface {
	List(ctx context.Context) ([]Member, error)
	Create(ctx context.Context, input CreateInput) ([]Member, error)
	Update(ctx context.Context, input UpdateInput) ([]Member, error)
	Delete(ctx context.Context, id string) ([]Member, error)
}

type ServiceParams struct {
	Repo   repository
	Links  linkReconciler
	Logger *logger.Logger
}

type service struct {
	repo  repository
	links linkReconciler
	logg  *logger.Logger
}

// NewService builds the team service. Links may be nil, in which case member
// updates never touch assignments.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("team repository required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: params.Repo, links: params.Links, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]Member, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, recordstore.AppError(err, "list team members")
	}
	return members, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) ([]Member, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	members, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, recordstore.AppError(err, "create team member")
	}
	s.logg.Info(s.logg.WithField(ctx, "member_name", input.Name), "team member created")
	return members, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) ([]Member, error) {
	id, err := requireID(input.ID)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(input.Patch); err != nil {
		return nil, err
	}

	ctx = s.logg.WithField(ctx, "member_id", id)
	members, matched, err := s.repo.Update(ctx, id, input.Patch)
	if err != nil {
		return nil, recordstore.AppError(err, "update team member")
	}
	if !matched {
		s.logg.Warn(ctx, "team member update ignored: unknown id")
		return members, nil
	}

	if input.TemplateIDs != nil && s.links != nil {
		result, err := s.links.Reconcile(ctx, enums.AnchorMember, id, input.TemplateIDs, input.AssignmentRole)
		if err != nil {
			return nil, err
		}
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"added":   len(result.Added),
			"removed": len(result.Removed),
		}), "member templates reconciled")
	}
	return members, nil
}

func (s *service) Delete(ctx context.Context, id string) ([]Member, error) {
	id, err := requireID(id)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithField(ctx, "member_id", id)

	members, removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, recordstore.AppError(err, "delete team member")
	}
	// runs even when the member is already gone so a retried delete clears
	// links left behind by an earlier failure
	if s.links != nil {
		if _, err := s.links.Reconcile(ctx, enums.AnchorMember, id, []string{}, ""); err != nil {
			return nil, err
		}
	}
	if removed {
		s.logg.Info(ctx, "team member deleted")
	}
	return members, nil
}
