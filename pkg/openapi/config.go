package openapi

import "os"

// Config carries the document metadata rendered into the spec Info
// block.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// ConfigEnv names the env vars that may override each Config field.
type ConfigEnv struct {
	Title       string
	Description string
}

// Finalize fills defaults, then lets the named env vars override them.
// A nil env skips the override step.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return nil
}

// Merge copies non-empty overlay fields onto c.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}

	if overlay.Description != "" {
		c.Description = overlay.Description
	}
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "Teller API"
	}

	if c.Description == "" {
		c.Description = "Cheque intake and clearing workflow service."
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	override := func(key string, dst *string) {
		if key == "" {
			return
		}
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	override(env.Title, &c.Title)
	override(env.Description, &c.Description)
}
