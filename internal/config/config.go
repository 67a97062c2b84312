// Package config loads the layered Teller configuration: a base
// config.toml, an optional per-environment overlay selected by
// TELLER_ENV, then env var overrides on top. Every section follows the
// same finalize pattern of defaults, env, validate.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/counterfoil/teller/internal/payers"
	"github.com/counterfoil/teller/pkg/database"
	"github.com/counterfoil/teller/pkg/storage"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvTellerEnv             = "TELLER_ENV"
	EnvTellerShutdownTimeout = "TELLER_SHUTDOWN_TIMEOUT"
	EnvTellerVersion         = "TELLER_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "TELLER_DB_HOST",
	Port:            "TELLER_DB_PORT",
	Name:            "TELLER_DB_NAME",
	User:            "TELLER_DB_USER",
	Password:        "TELLER_DB_PASSWORD",
	SSLMode:         "TELLER_DB_SSL_MODE",
	MaxOpenConns:    "TELLER_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "TELLER_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "TELLER_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "TELLER_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "TELLER_STORAGE_CONTAINER_NAME",
	ConnectionString: "TELLER_STORAGE_CONNECTION_STRING",
}

var directoryEnv = &payers.Env{
	Path:        "TELLER_DIRECTORY_PATH",
	Watch:       "TELLER_DIRECTORY_WATCH",
	AssetsMode:  "TELLER_DIRECTORY_ASSETS_MODE",
	AssetsDir:   "TELLER_DIRECTORY_ASSETS_DIR",
	AssetPrefix: "TELLER_DIRECTORY_ASSET_PREFIX",
}

// Config is the root of the Teller configuration tree.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	Database        database.Config      `toml:"database"`
	Storage         storage.Config       `toml:"storage"`
	API             APIConfig            `toml:"api"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	Directory       payers.Config        `toml:"directory"`
	Intake          IntakeConfig         `toml:"intake"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env reports the deployment environment from TELLER_ENV, or "local"
// when unset.
func (c *Config) Env() string {
	if env := os.Getenv(EnvTellerEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration parses the already validated ShutdownTimeout.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load assembles the configuration: base file when present, overlay for
// the current TELLER_ENV when present, then finalize. A missing
// config.toml is not an error since defaults plus env vars can stand
// alone.
func Load() (*Config, error) {
	cfg, err := readBase()
	if err != nil {
		return nil, err
	}

	if err := applyOverlay(cfg); err != nil {
		return nil, err
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge copies non-zero overlay fields onto c, recursing into every
// section.
func (c *Config) Merge(overlay *Config) {
	mergeString(&c.ShutdownTimeout, overlay.ShutdownTimeout)
	mergeString(&c.Version, overlay.Version)

	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Agent.Merge(&overlay.Agent)
	c.Directory.Merge(&overlay.Directory)
	c.Intake.Merge(&overlay.Intake)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}

	sections := []struct {
		name string
		run  func() error
	}{
		{"server", c.Server.Finalize},
		{"database", func() error { return c.Database.Finalize(databaseEnv) }},
		{"storage", func() error { return c.Storage.Finalize(storageEnv) }},
		{"api", c.API.Finalize},
		{"agent", func() error { return FinalizeAgent(&c.Agent) }},
		{"directory", func() error { return c.Directory.Finalize(directoryEnv) }},
		{"intake", c.Intake.Finalize},
	}

	for _, s := range sections {
		if err := s.run(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}

	return nil
}

func (c *Config) loadDefaults() {
	defaultString(&c.ShutdownTimeout, "30s")
	defaultString(&c.Version, "0.1.0")
}

func (c *Config) loadEnv() {
	overrideString(EnvTellerShutdownTimeout, &c.ShutdownTimeout)
	overrideString(EnvTellerVersion, &c.Version)
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

// readBase parses config.toml, or returns an empty Config when the file
// does not exist.
func readBase() (*Config, error) {
	if _, err := os.Stat(BaseConfigFile); err != nil {
		return &Config{}, nil
	}
	return parseFile(BaseConfigFile)
}

// applyOverlay merges config.<env>.toml when TELLER_ENV names an
// environment and the overlay file exists.
func applyOverlay(cfg *Config) error {
	env := os.Getenv(EnvTellerEnv)
	if env == "" {
		return nil
	}

	path := fmt.Sprintf(OverlayConfigPattern, env)
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	overlay, err := parseFile(path)
	if err != nil {
		return fmt.Errorf("load overlay %s: %w", path, err)
	}

	cfg.Merge(overlay)
	return nil
}

func parseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}
