// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"context"
	"net/http"

	"github.com/counterfoil/teller/internal/config"
	"github.com/counterfoil/teller/internal/infrastructure"
)

// New creates the API handler with all domain systems, middleware, and
// routes. The context bounds OIDC issuer discovery when auth is enabled.
func New(ctx context.Context, cfg *config.Config, infra *infrastructure.Infrastructure) (http.Handler, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, err
	}

	return newRouter(ctx, cfg, runtime, domain)
}
