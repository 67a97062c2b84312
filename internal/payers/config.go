package payers

import (
	"fmt"
	"os"
	"strconv"
)

// Asset store modes.
const (
	AssetsDir  = "dir"
	AssetsBlob = "blob"
)

// Config holds payer directory settings: the directory file, the hot
// reload toggle, and how reference signature assets are resolved.
type Config struct {
	Path        string `toml:"path"`
	Watch       bool   `toml:"watch"`
	AssetsMode  string `toml:"assets_mode"`
	AssetsDir   string `toml:"assets_dir"`
	AssetPrefix string `toml:"asset_prefix"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Path        string
	Watch       string
	AssetsMode  string
	AssetsDir   string
	AssetPrefix string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites fields from overlay. Watch always applies; string
// fields only apply when non-empty.
func (c *Config) Merge(overlay *Config) {
	c.Watch = overlay.Watch

	if overlay.Path != "" {
		c.Path = overlay.Path
	}
	if overlay.AssetsMode != "" {
		c.AssetsMode = overlay.AssetsMode
	}
	if overlay.AssetsDir != "" {
		c.AssetsDir = overlay.AssetsDir
	}
	if overlay.AssetPrefix != "" {
		c.AssetPrefix = overlay.AssetPrefix
	}
}

func (c *Config) loadDefaults() {
	if c.Path == "" {
		c.Path = "payers.toml"
	}
	if c.AssetsMode == "" {
		c.AssetsMode = AssetsDir
	}
	if c.AssetsDir == "" {
		c.AssetsDir = "signatures"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Path != "" {
		if v := os.Getenv(env.Path); v != "" {
			c.Path = v
		}
	}
	if env.Watch != "" {
		if v := os.Getenv(env.Watch); v != "" {
			if watch, err := strconv.ParseBool(v); err == nil {
				c.Watch = watch
			}
		}
	}
	if env.AssetsMode != "" {
		if v := os.Getenv(env.AssetsMode); v != "" {
			c.AssetsMode = v
		}
	}
	if env.AssetsDir != "" {
		if v := os.Getenv(env.AssetsDir); v != "" {
			c.AssetsDir = v
		}
	}
	if env.AssetPrefix != "" {
		if v := os.Getenv(env.AssetPrefix); v != "" {
			c.AssetPrefix = v
		}
	}
}

func (c *Config) validate() error {
	if c.Path == "" {
		return fmt.Errorf("path required")
	}
	if c.AssetsMode != AssetsDir && c.AssetsMode != AssetsBlob {
		return fmt.Errorf("assets_mode must be %s or %s", AssetsDir, AssetsBlob)
	}
	if c.AssetsMode == AssetsDir && c.AssetsDir == "" {
		return fmt.Errorf("assets_dir required for dir assets")
	}
	return nil
}
