package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/kitchen-inventory-backend/api/responses"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/kitchen-inventory-backend/pkg/errors"
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/logger"
)

const (
	envHeader         = "X-Kitchen-Env"
	readyCheckTimeout = 2 * time.Second
)

// Pinger is a dependency readiness probes can reach. *db.Client and
// *redis.Client satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every named dependency and answers 503 when one fails.
func HealthReady(cfg *config.Config, deps map[string]Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		failed := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				failed[name] = "not configured"
				continue
			}
			ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
			err := dep.Ping(ctx)
			cancel()
			if err != nil {
				failed[name] = err.Error()
			}
		}

		if len(failed) > 0 {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").WithDetails(failed)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
