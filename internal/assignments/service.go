package assignments

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/northbeam-studio/studio-admin/pkg/errors"
	"github.com/northbeam-studio/studio-admin/pkg/logger"
	"github.com/northbeam-studio/studio-admin/pkg/recordstore"
	"github.com/northbeam-studio/studio-admin/pkg/validation"
)

type repository interface {
	List(ctx context.Context) ([]Assignment, error)
	Find(ctx context.Context, filter Filter) ([]Assignment, error)
	Create(ctx context.Context, templateID, memberID, role string) ([]Assignment, error)
	Delete(ctx context.Context, templateID, memberID string) ([]Assignment, error)
}

// existence is satisfied by the team and template repositories.
type existence interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service exposes assignment operations to the HTTP layer.
type Service interface {
	List(ctx context.Context, filter Filter) ([]Assignment, error)
	Create(ctx context.Context, input CreateInput) ([]Assignment, error)
	Delete(ctx context.Context, templateID, memberID string) ([]Assignment, error)
}

type ServiceParams struct {
	Repo      repository
	Members   existence
	Templates existence
	Logger    *logger.Logger
}

type service struct {
	repo      repository
	members   existence
	templates existence
	logg      *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("assignment repository required")
	}
	if params.Members == nil {
		return nil, fmt.Errorf("team repository required")
	}
	if params.Templates == nil {
		return nil, fmt.Errorf("template repository required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		repo:      params.Repo,
		members:   params.Members,
		templates: params.Templates,
		logg:      logg,
	}, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]Assignment, error) {
	filter.TemplateID = strings.TrimSpace(filter.TemplateID)
	filter.MemberID = strings.TrimSpace(filter.MemberID)

	var (
		out []Assignment
		err error
	)
	if filter == (Filter{}) {
		out, err = s.repo.List(ctx)
	} else {
		out, err = s.repo.Find(ctx, filter)
	}
	if err != nil {
		return nil, recordstore.AppError(err, "list assignments")
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) ([]Assignment, error) {
	input.TemplateID = strings.TrimSpace(input.TemplateID)
	input.MemberID = strings.TrimSpace(input.MemberID)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	role := strings.TrimSpace(input.RoleInProject)
	if role == "" {
		role = DefaultRole
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"template_id": input.TemplateID,
		"member_id":   input.MemberID,
	})
	if err := s.requireExists(ctx, s.templates, "template", input.TemplateID); err != nil {
		return nil, err
	}
	if err := s.requireExists(ctx, s.members, "team member", input.MemberID); err != nil {
		return nil, err
	}

	out, err := s.repo.Create(ctx, input.TemplateID, input.MemberID, role)
	if err != nil {
		return nil, recordstore.AppError(err, "create assignment")
	}
	s.logg.Info(ctx, "assignment created")
	return out, nil
}

func (s *service) Delete(ctx context.Context, templateID, memberID string) ([]Assignment, error) {
	out, err := s.repo.Delete(ctx, templateID, memberID)
	if err != nil {
		return nil, recordstore.AppError(err, "delete assignment")
	}
	return out, nil
}

func (s *service) requireExists(ctx context.Context, repo existence, kind, id string) error {
	ok, err := repo.Exists(ctx, id)
	if err != nil {
		return recordstore.AppError(err, "look up "+kind)
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, kind+" not found").WithDetails(map[string]string{"id": id})
	}
	return nil
}
