// Package infrastructure assembles the shared runtime systems that the
// domain packages build on: lifecycle coordination, logging, Postgres,
// blob storage, and the payer directory.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/counterfoil/teller/internal/config"
	"github.com/counterfoil/teller/internal/payers"
	"github.com/counterfoil/teller/pkg/database"
	"github.com/counterfoil/teller/pkg/lifecycle"
	"github.com/counterfoil/teller/pkg/storage"
)

// Infrastructure carries the shared systems handed to each domain
// module at construction time.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Directory payers.System
}

// New builds every shared system from the loaded configuration. Nothing
// is started here; Start wires the lifecycle hooks afterwards.
func New(cfg *config.Config) (*Infrastructure, error) {
	infra := &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	var err error

	if infra.Database, err = database.New(&cfg.Database, infra.Logger); err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	if infra.Storage, err = storage.New(&cfg.Storage, infra.Logger); err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	if infra.Directory, err = payers.New(&cfg.Directory, infra.Logger); err != nil {
		return nil, fmt.Errorf("payer directory init failed: %w", err)
	}

	return infra, nil
}

// Start registers startup and shutdown hooks for each system with the
// lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}

	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}

	if err := i.Directory.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("payer directory start failed: %w", err)
	}

	return nil
}
