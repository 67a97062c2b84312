package api

import (
	"github.com/counterfoil/teller/internal/config"
	"github.com/counterfoil/teller/internal/infrastructure"
	"github.com/counterfoil/teller/internal/payers"
	"github.com/counterfoil/teller/pkg/pagination"
	"github.com/counterfoil/teller/pkg/storage"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Runtime is what the domain systems see: shared infrastructure plus
// the API-scoped configuration and the signature asset store.
type Runtime struct {
	*infrastructure.Infrastructure
	Agent      gaconfig.AgentConfig
	Intake     config.IntakeConfig
	Assets     payers.AssetStore
	Pagination pagination.Config
}

// NewRuntime scopes the shared infrastructure for the API module,
// attaching a module-tagged logger and resolving the asset store from
// the directory config.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &scoped,
		Agent:          cfg.Agent,
		Intake:         cfg.Intake,
		Assets:         newAssetStore(&cfg.Directory, infra.Storage),
		Pagination:     cfg.API.Pagination,
	}
}

// newAssetStore picks the signature image backend: blob storage when
// the directory is configured for it, a local directory otherwise.
func newAssetStore(cfg *payers.Config, store storage.System) payers.AssetStore {
	if cfg.AssetsMode == payers.AssetsBlob {
		return payers.NewBlobStore(store, cfg.AssetPrefix)
	}
	return payers.NewDirStore(cfg.AssetsDir)
}
