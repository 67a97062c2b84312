package config

import (
	"fmt"
	"time"
)

// Env var names for the HTTP listener.
const (
	EnvServerHost            = "TELLER_SERVER_HOST"
	EnvServerPort            = "TELLER_SERVER_PORT"
	EnvServerReadTimeout     = "TELLER_SERVER_READ_TIMEOUT"
	EnvServerWriteTimeout    = "TELLER_SERVER_WRITE_TIMEOUT"
	EnvServerShutdownTimeout = "TELLER_SERVER_SHUTDOWN_TIMEOUT"
)

// ServerConfig describes the HTTP listener. Timeouts are duration
// strings ("1m", "30s") validated during Finalize.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

// Addr joins Host and Port into a listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ReadTimeoutDuration parses ReadTimeout. Finalize has already rejected
// malformed values, so the parse error is discarded.
func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	return d
}

// WriteTimeoutDuration parses WriteTimeout.
func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
	return d
}

// ShutdownTimeoutDuration parses ShutdownTimeout.
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Finalize fills defaults, applies env overrides, then validates.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge copies every non-zero overlay field onto c.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	mergeString(&c.Host, overlay.Host)
	mergeString(&c.ReadTimeout, overlay.ReadTimeout)
	mergeString(&c.WriteTimeout, overlay.WriteTimeout)
	mergeString(&c.ShutdownTimeout, overlay.ShutdownTimeout)

	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
}

func (c *ServerConfig) loadDefaults() {
	defaultString(&c.Host, "0.0.0.0")
	defaultString(&c.ReadTimeout, "1m")
	defaultString(&c.WriteTimeout, "15m")
	defaultString(&c.ShutdownTimeout, "30s")

	if c.Port == 0 {
		c.Port = 8080
	}
}

func (c *ServerConfig) loadEnv() {
	overrideString(EnvServerHost, &c.Host)
	overrideInt(EnvServerPort, &c.Port)
	overrideString(EnvServerReadTimeout, &c.ReadTimeout)
	overrideString(EnvServerWriteTimeout, &c.WriteTimeout)
	overrideString(EnvServerShutdownTimeout, &c.ShutdownTimeout)
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	for _, tv := range []struct {
		field string
		value string
	}{
		{"read_timeout", c.ReadTimeout},
		{"write_timeout", c.WriteTimeout},
		{"shutdown_timeout", c.ShutdownTimeout},
	} {
		if _, err := time.ParseDuration(tv.value); err != nil {
			return fmt.Errorf("invalid %s: %w", tv.field, err)
		}
	}

	return nil
}
