package clearing

import (
	"fmt"
	"os"
)

// DefaultAccountRule accepts accounts carrying the institution's test
// marker. Production deployments replace it with a real clearing check.
const DefaultAccountRule = `account.contains("123")`

// Config holds the clearing rule settings.
type Config struct {
	AccountRule string `toml:"account_rule"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	AccountRule string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.AccountRule != "" {
		c.AccountRule = overlay.AccountRule
	}
}

func (c *Config) loadDefaults() {
	if c.AccountRule == "" {
		c.AccountRule = DefaultAccountRule
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.AccountRule != "" {
		if v := os.Getenv(env.AccountRule); v != "" {
			c.AccountRule = v
		}
	}
}

func (c *Config) validate() error {
	if c.AccountRule == "" {
		return fmt.Errorf("account rule required")
	}
	return nil
}
