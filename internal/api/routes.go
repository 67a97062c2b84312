package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/counterfoil/teller/internal/config"
	"github.com/counterfoil/teller/pkg/handlers"
	"github.com/counterfoil/teller/pkg/middleware"
	"github.com/counterfoil/teller/pkg/openapi"
	"github.com/counterfoil/teller/web/scalar"
)

// newRouter builds the service router: request logging and CORS wrap
// everything, liveness, readiness, and docs stay open, and the API
// subtree sits behind bearer auth when enabled.
func newRouter(
	ctx context.Context,
	cfg *config.Config,
	rt *Runtime,
	domain *Domain,
) (chi.Router, error) {
	auth, err := middleware.Auth(ctx, &cfg.API.Auth, rt.Logger)
	if err != nil {
		return nil, fmt.Errorf("auth middleware: %w", err)
	}

	specBytes, err := buildSpecJSON(cfg)
	if err != nil {
		return nil, fmt.Errorf("openapi spec: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger(rt.Logger))
	r.Use(middleware.CORS(&cfg.API.CORS))

	r.Get("/healthz", health(cfg))
	r.Get("/readyz", ready(rt))

	r.Get("/openapi.json", openapi.ServeSpec(specBytes))
	r.Get("/docs", scalar.Handler("/openapi.json"))

	r.Route(cfg.API.BasePath, func(api chi.Router) {
		api.Use(auth)
		api.Mount("/cases", domain.Cases.Handler(cfg.API.MaxUploadSizeBytes()).Routes())
	})

	return r, nil
}

func health(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": cfg.Version,
		})
	}
}

func ready(rt *Runtime) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rt.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
