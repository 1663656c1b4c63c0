// Package studio assembles repositories, the reconcile engine and the
// services on top of one record store.
package studio

import (
	"fmt"
	"time"

	"github.com/northbeam-studio/studio-admin/internal/assignments"
	"github.com/northbeam-studio/studio-admin/internal/leads"
	"github.com/northbeam-studio/studio-admin/internal/reconcile"
	"github.com/northbeam-studio/studio-admin/internal/team"
	"github.com/northbeam-studio/studio-admin/internal/templates"
	"github.com/northbeam-studio/studio-admin/pkg/ids"
	"github.com/northbeam-studio/studio-admin/pkg/logger"
	"github.com/northbeam-studio/studio-admin/pkg/metrics"
	"github.com/northbeam-studio/studio-admin/pkg/recordstore"
)

type Options struct {
	Store   *recordstore.Store
	Metrics *metrics.ReconcileMetrics
	Logger  *logger.Logger
	// NewID and Now default to ids.New and time.Now.
	NewID ids.Generator
	Now   func() time.Time
}

// Services is everything the HTTP layer and the CLI drive.
type Services struct {
	Team        team.Service
	Templates   templates.Service
	Leads       leads.Service
	Assignments assignments.Service
	Engine      *reconcile.Engine
}

func New(opts Options) (*Services, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("record store required")
	}
	newID := opts.NewID
	if newID == nil {
		newID = ids.New
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	teamRepo := team.NewRepository(opts.Store, newID)
	templateRepo := templates.NewRepository(opts.Store, newID)
	leadRepo := leads.NewRepository(opts.Store, newID)
	assignmentRepo := assignments.NewRepository(opts.Store, newID, now)

	engine, err := reconcile.NewEngine(reconcile.Params{
		Assignments: assignmentRepo,
		Members:     teamRepo,
		Templates:   templateRepo,
		Metrics:     opts.Metrics,
		Logger:      logg,
	})
	if err != nil {
		return nil, fmt.Errorf("reconcile engine: %w", err)
	}

	teamSvc, err := team.NewService(team.ServiceParams{Repo: teamRepo, Links: engine, Logger: logg})
	if err != nil {
		return nil, fmt.Errorf("team service: %w", err)
	}
	templateSvc, err := templates.NewService(templates.ServiceParams{Repo: templateRepo, Links: engine, Logger: logg})
	if err != nil {
		return nil, fmt.Errorf("template service: %w", err)
	}
	leadSvc, err := leads.NewService(leadRepo, logg)
	if err != nil {
		return nil, fmt.Errorf("lead service: %w", err)
	}
	assignmentSvc, err := assignments.NewService(assignments.ServiceParams{
		Repo:      assignmentRepo,
		Members:   teamRepo,
		Templates: templateRepo,
		Logger:    logg,
	})
	if err != nil {
		return nil, fmt.Errorf("assignment service: %w", err)
	}

	return &Services{
		Team:        teamSvc,
		Templates:   templateSvc,
		Leads:       leadSvc,
		Assignments: assignmentSvc,
		Engine:      engine,
	}, nil
}
