package controllers

import (
	"context"
	"net/http"

	"github.com/mitraternak/kandang-backend/api/responses"
	"github.com/mitraternak/kandang-backend/pkg/config"
	pkgerrors "github.com/mitraternak/kandang-backend/pkg/errors"
	"github.com/mitraternak/kandang-backend/pkg/logger"
)

// Pinger is any dependency the readiness probe should verify.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Kandang-Env", cfg.App.Env)
		responses.WriteSuccess(w, "live", map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Kandang-Env", cfg.App.Env)
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, "ready", map[string]string{"status": "ready"})
	}
}
