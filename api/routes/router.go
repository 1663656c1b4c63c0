package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/northbeam-studio/studio-admin/api/controllers"
	"github.com/northbeam-studio/studio-admin/api/middleware"
	"github.com/northbeam-studio/studio-admin/internal/assignments"
	"github.com/northbeam-studio/studio-admin/internal/leads"
	"github.com/northbeam-studio/studio-admin/internal/team"
	"github.com/northbeam-studio/studio-admin/internal/templates"
	"github.com/northbeam-studio/studio-admin/pkg/config"
	"github.com/northbeam-studio/studio-admin/pkg/logger"
	"github.com/northbeam-studio/studio-admin/pkg/redis"
)

// Params lists what the router serves. Redis and Metrics are optional: without
// redis, idempotency replay and lead throttling are off.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	Team        team.Service
	Templates   templates.Service
	Leads       leads.Service
	Assignments assignments.Service
	Reconciler  controllers.Reconciler
	Store       controllers.Pinger
	Redis       *redis.Client
	Metrics     http.Handler
}

func NewRouter(p Params) http.Handler {
	cfg, logg := p.Config, p.Logger

	var (
		idempotencyStore redis.IdempotencyStore
		rateLimitStore   middleware.RateLimitStore
		readiness        = []controllers.Dependency{{Name: "record_store", Pinger: p.Store}}
	)
	if p.Redis != nil {
		idempotencyStore = p.Redis
		rateLimitStore = p.Redis
		readiness = append(readiness, controllers.Dependency{Name: "redis", Pinger: p.Redis})
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.HTTP.AllowedOrigins),
		middleware.Idempotency(idempotencyStore, logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, logg, readiness...))
	})
	if p.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", p.Metrics)
	}

	r.Route("/team", func(r chi.Router) {
		r.Get("/", controllers.ListTeam(p.Team, logg))
		r.Post("/", controllers.CreateTeamMember(p.Team, logg))
		r.Put("/", controllers.UpdateTeamMember(p.Team, logg))
		r.Delete("/", controllers.DeleteTeamMember(p.Team, logg))
	})

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", controllers.ListTemplates(p.Templates, logg))
		r.Post("/", controllers.CreateTemplate(p.Templates, logg))
		r.Put("/", controllers.UpdateTemplate(p.Templates, logg))
		r.Delete("/", controllers.DeleteTemplate(p.Templates, logg))
	})

	leadPolicy := middleware.NewRateLimitPolicy(
		"leads",
		cfg.HTTP.LeadRateWindow,
		cfg.HTTP.LeadRateIPLimit,
		cfg.HTTP.LeadRateEmailLimit,
	)
	r.Route("/leads", func(r chi.Router) {
		r.Get("/", controllers.ListLeads(p.Leads, logg))
		r.With(middleware.RateLimit(leadPolicy, rateLimitStore, logg)).Post("/", controllers.CreateLead(p.Leads, logg))
		r.Put("/", controllers.UpdateLead(p.Leads, logg))
		r.Delete("/", controllers.DeleteLead(p.Leads, logg))
	})

	r.Route("/assignments", func(r chi.Router) {
		r.Get("/", controllers.ListAssignments(p.Assignments, logg))
		r.Post("/", controllers.CreateAssignment(p.Assignments, logg))
		r.Delete("/", controllers.DeleteAssignment(p.Assignments, logg))
		r.Post("/sync", controllers.SyncAssignments(p.Reconciler, p.Assignments, logg))
	})

	return r
}
