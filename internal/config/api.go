package config

import (
	"fmt"

	"github.com/counterfoil/teller/pkg/formatting"
	"github.com/counterfoil/teller/pkg/middleware"
	"github.com/counterfoil/teller/pkg/openapi"
	"github.com/counterfoil/teller/pkg/pagination"
)

// Env var names for API settings live here rather than in the pkg
// packages so the TELLER_ prefix stays in one place.
const (
	EnvAPIBasePath      = "TELLER_API_BASE_PATH"
	EnvAPIMaxUploadSize = "TELLER_API_MAX_UPLOAD_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "TELLER_CORS_ENABLED",
	Origins:          "TELLER_CORS_ORIGINS",
	AllowedMethods:   "TELLER_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "TELLER_CORS_ALLOWED_HEADERS",
	AllowCredentials: "TELLER_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "TELLER_CORS_MAX_AGE",
}

var authEnv = &middleware.AuthEnv{
	Enabled:  "TELLER_AUTH_ENABLED",
	Issuer:   "TELLER_AUTH_ISSUER",
	Audience: "TELLER_AUTH_AUDIENCE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "TELLER_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "TELLER_PAGINATION_MAX_PAGE_SIZE",
}

var docsEnv = &openapi.ConfigEnv{
	Title:       "TELLER_DOCS_TITLE",
	Description: "TELLER_DOCS_DESCRIPTION",
}

// APIConfig groups the HTTP API surface: route prefix, upload limit,
// and the nested CORS, auth, pagination, and docs sections.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Auth          middleware.AuthConfig `toml:"auth"`
	Pagination    pagination.Config     `toml:"pagination"`
	Docs          openapi.Config        `toml:"docs"`
}

// MaxUploadSizeBytes converts MaxUploadSize ("50MB") to bytes, falling
// back to 50MB when the value does not parse.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 50 * 1024 * 1024 // 50MB fallback
	}
	return size
}

// Finalize fills defaults and env overrides for the top-level fields,
// then finalizes each nested section.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	sections := []struct {
		name string
		run  func() error
	}{
		{"cors", func() error { return c.CORS.Finalize(corsEnv) }},
		{"auth", func() error { return c.Auth.Finalize(authEnv) }},
		{"pagination", func() error { return c.Pagination.Finalize(paginationEnv) }},
		{"docs", func() error { return c.Docs.Finalize(docsEnv) }},
	}

	for _, s := range sections {
		if err := s.run(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}

	return nil
}

// Merge copies non-zero overlay fields onto c and recurses into the
// nested sections.
func (c *APIConfig) Merge(overlay *APIConfig) {
	mergeString(&c.BasePath, overlay.BasePath)
	mergeString(&c.MaxUploadSize, overlay.MaxUploadSize)

	c.CORS.Merge(&overlay.CORS)
	c.Auth.Merge(&overlay.Auth)
	c.Pagination.Merge(&overlay.Pagination)
	c.Docs.Merge(&overlay.Docs)
}

func (c *APIConfig) loadDefaults() {
	defaultString(&c.BasePath, "/api")
	defaultString(&c.MaxUploadSize, "50MB")
}

func (c *APIConfig) loadEnv() {
	overrideString(EnvAPIBasePath, &c.BasePath)
	overrideString(EnvAPIMaxUploadSize, &c.MaxUploadSize)
}
