package config

import (
	"fmt"

	"github.com/counterfoil/teller/internal/clearing"
)

const (
	EnvIntakeStaleDays  = "TELLER_INTAKE_STALE_DAYS"
	EnvIntakeLienAdvice = "TELLER_INTAKE_LIEN_ADVICE"
)

var clearingEnv = &clearing.Env{
	AccountRule: "TELLER_INTAKE_ACCOUNT_RULE",
}

// IntakeConfig holds cheque acceptance policy: how old a cheque date may
// be, the account clearing rule, and whether approved cheques receive
// lien advice.
type IntakeConfig struct {
	StaleDays  int             `toml:"stale_days"`
	LienAdvice bool            `toml:"lien_advice"`
	Clearing   clearing.Config `toml:"clearing"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the intake config and its nested clearing config.
func (c *IntakeConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Clearing.Finalize(clearingEnv); err != nil {
		return fmt.Errorf("clearing: %w", err)
	}
	return nil
}

// Merge overwrites fields from overlay. LienAdvice always applies;
// StaleDays only applies when non-zero.
func (c *IntakeConfig) Merge(overlay *IntakeConfig) {
	c.LienAdvice = overlay.LienAdvice

	if overlay.StaleDays != 0 {
		c.StaleDays = overlay.StaleDays
	}

	c.Clearing.Merge(&overlay.Clearing)
}

func (c *IntakeConfig) loadDefaults() {
	if c.StaleDays == 0 {
		c.StaleDays = 180
	}
}

func (c *IntakeConfig) loadEnv() {
	overrideInt(EnvIntakeStaleDays, &c.StaleDays)
	overrideBool(EnvIntakeLienAdvice, &c.LienAdvice)
}

func (c *IntakeConfig) validate() error {
	if c.StaleDays < 1 {
		return fmt.Errorf("stale_days must be positive: %d", c.StaleDays)
	}
	return nil
}
