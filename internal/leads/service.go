package leads

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
	List(ctx context.Context) ([]Lead, error)
	Create(ctx context.Context, input CreateInput) ([]Lead, error)
	Update(ctx context.Context, id string, patch Patch) ([]Lead, bool, error)
	Delete(ctx context.Context, id string) ([]Lead, bool, error)
}

// Service exposes lead operations.
type Service interface {
	List(ctx context.Context) ([]Lead, error)
	Create(ctx context.Context, input CreateInput) ([]Lead, error)
	Update(ctx context.Context, id string, patch Patch) ([]Lead, error)
	Delete(ctx context.Context, id string) ([]Lead, error)
}

type service struct {
	repo repository
	logg *logger.Logger
}

func NewService(repo repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("lead repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]Lead, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, recordstore.AppError(err, "list leads")
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) ([]Lead, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	out, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, recordstore.AppError(err, "create lead")
	}
	s.logg.Info(ctx, "lead ingested")
	return out, nil
}

func (s *service) Update(ctx context.Context, id string, patch Patch) ([]Lead, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "id is required")
	}
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}
	ctx = s.logg.WithField(ctx, "lead_id", id)
	out, matched, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, recordstore.AppError(err, "update lead")
	}
	if !matched {
		s.logg.Warn(ctx, "lead update ignored: unknown id")
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id string) ([]Lead, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "id is required")
	}
	out, removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, recordstore.AppError(err, "delete lead")
	}
	if removed {
		s.logg.Info(s.logg.WithField(ctx, "lead_id", id), "lead purged")
	}
	return out, nil
}
