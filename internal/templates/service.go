package templates

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
	List(ctx context.Context) ([]Template, error)
	Create(ctx context.Context, input CreateInput) ([]Template, error)
	Update(ctx context.Context, id string, patch Patch) ([]Template, bool, error)
	Delete(ctx context.Context, id string) ([]Template, bool, error)
}

type linkReconciler interface {
	Reconcile(ctx context.Context, anchor enums.Anchor, anchorID string, desired []string, role string) (reconcile.Result, error)
}

// Service exposes template operations.
type Service interface {
	List(ctx context.Context) ([]Template, error)
	Create(ctx context.Context, input CreateInput) ([]Template, error)
	Update(ctx context.Context, input UpdateInput) ([]Template, error)
	Delete(ctx context.Context, id string) ([]Template, error)
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

// NewService builds the template service. Links may be nil, in which case
// template updates never touch assignments.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("template repository required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: params.Repo, links: params.Links, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]Template, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, recordstore.AppError(err, "list templates")
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) ([]Template, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	out, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, recordstore.AppError(err, "create template")
	}
	s.logg.Info(s.logg.WithField(ctx, "code_name", input.CodeName), "template created")
	return out, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) ([]Template, error) {
	id, err := requireID(input.ID)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(input.Patch); err != nil {
		return nil, err
	}

	ctx = s.logg.WithField(ctx, "template_id", id)
	out, matched, err := s.repo.Update(ctx, id, input.Patch)
	if err != nil {
		return nil, recordstore.AppError(err, "update template")
	}
	if !matched {
		s.logg.Warn(ctx, "template update ignored: unknown id")
		return out, nil
	}

	if input.MemberIDs != nil && s.links != nil {
		result, err := s.links.Reconcile(ctx, enums.AnchorTemplate, id, input.MemberIDs, input.AssignmentRole)
		if err != nil {
			return nil, err
		}
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"added":   len(result.Added),
			"removed": len(result.Removed),
		}), "template members reconciled")
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id string) ([]Template, error) {
	id, err := requireID(id)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithField(ctx, "template_id", id)

	out, removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, recordstore.AppError(err, "delete template")
	}
	// runs even when the template is already gone so a retried delete clears
	// links left behind by an earlier failure
	if s.links != nil {
		if _, err := s.links.Reconcile(ctx, enums.AnchorTemplate, id, []string{}, ""); err != nil {
			return nil, err
		}
	}
	if removed {
		s.logg.Info(ctx, "template deleted")
	}
	return out, nil
}
