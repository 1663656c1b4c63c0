package controllers

import (
	"context"
	"net/http"

	"github.com/northbeam-studio/studio-admin/api/responses"
	pkgerrors "github.com/northbeam-studio/studio-admin/pkg/errors"
	"github.com/northbeam-studio/studio-admin/pkg/logger"
)

// Pinger reports whether a dependency can serve requests.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Studio-Env", env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// Dependency is one named readiness check.
type Dependency struct {
	Name   string
	Pinger Pinger
}

// HealthReady pings every dependency in order and fails on the first that is down.
func HealthReady(env string, logg *logger.Logger, deps ...Dependency) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Studio-Env", env)
		for _, dep := range deps {
			if dep.Pinger == nil {
				continue
			}
			if err := dep.Pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, dep.Name+" not ready").
						WithDetails(map[string]string{"dependency": dep.Name}))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
