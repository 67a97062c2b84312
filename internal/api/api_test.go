package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/counterfoil/teller/internal/api"
	"github.com/counterfoil/teller/internal/clearing"
	"github.com/counterfoil/teller/internal/config"
	"github.com/counterfoil/teller/internal/infrastructure"
	"github.com/counterfoil/teller/internal/payers"
	"github.com/counterfoil/teller/pkg/database"
	"github.com/counterfoil/teller/pkg/middleware"
	"github.com/counterfoil/teller/pkg/openapi"
	"github.com/counterfoil/teller/pkg/pagination"
	"github.com/counterfoil/teller/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

const payersFixture = `[payers."12345678"]
name = "Apple Tan"
signature_path = "reference_signature.png"
`

func writePayers(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "payers.toml")
	if err := os.WriteFile(path, []byte(payersFixture), 0644); err != nil {
		t.Fatalf("write payers fixture: %v", err)
	}
	return path
}

func validConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Agent: gaconfig.AgentConfig{
			Name: "test-agent",
			Provider: &gaconfig.ProviderConfig{
				Name:    "ollama",
				BaseURL: "http://localhost:11434",
				Options: make(map[string]any),
			},
			Model: &gaconfig.ModelConfig{
				Name: "qwen2.5vl:7b",
			},
		},
		Server: config.ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     "1m",
			WriteTimeout:    "15m",
			ShutdownTimeout: "30s",
		},
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "teller",
			User:            "teller",
			Password:        "teller",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			ContainerName:    "cheques",
			ConnectionString: azuriteConnString,
		},
		API: config.APIConfig{
			BasePath:      "/api",
			MaxUploadSize: "50MB",
			CORS: middleware.CORSConfig{
				Enabled: false,
			},
			Auth: middleware.AuthConfig{
				Enabled: false,
			},
			Pagination: pagination.Config{
				DefaultPageSize: 20,
				MaxPageSize:     100,
			},
			Docs: openapi.Config{
				Title:       "Teller API",
				Description: "Cheque intake and clearing workflow service.",
			},
		},
		Directory: payers.Config{
			Path:       writePayers(t),
			AssetsMode: payers.AssetsDir,
			AssetsDir:  t.TempDir(),
		},
		Intake: config.IntakeConfig{
			StaleDays:  180,
			LienAdvice: false,
			Clearing: clearing.Config{
				AccountRule: `account.contains("123")`,
			},
		},
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}
}

func setupInfra(t *testing.T, cfg *config.Config) *infrastructure.Infrastructure {
	t.Helper()
	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	return infra
}

func TestNewRuntime(t *testing.T) {
	cfg := validConfig(t)
	infra := setupInfra(t, cfg)

	runtime := api.NewRuntime(cfg, infra)

	if runtime.Pagination.DefaultPageSize != 20 {
		t.Errorf("pagination default page size: got %d, want 20", runtime.Pagination.DefaultPageSize)
	}
	if runtime.Pagination.MaxPageSize != 100 {
		t.Errorf("pagination max page size: got %d, want 100", runtime.Pagination.MaxPageSize)
	}
	if runtime.Logger == nil {
		t.Error("runtime logger is nil")
	}
	if runtime.Database == nil {
		t.Error("runtime database is nil")
	}
	if runtime.Storage == nil {
		t.Error("runtime storage is nil")
	}
	if runtime.Lifecycle == nil {
		t.Error("runtime lifecycle is nil")
	}
	if runtime.Directory == nil {
		t.Error("runtime directory is nil")
	}
	if runtime.Assets == nil {
		t.Error("runtime asset store is nil")
	}
}

func TestNewDomain(t *testing.T) {
	cfg := validConfig(t)
	infra := setupInfra(t, cfg)
	runtime := api.NewRuntime(cfg, infra)

	domain, err := api.NewDomain(runtime)
	if err != nil {
		t.Fatalf("NewDomain() error = %v", err)
	}
	if domain.Cases == nil {
		t.Fatal("domain cases system is nil")
	}
}

func TestNewDomainBadClearingRule(t *testing.T) {
	cfg := validConfig(t)
	cfg.Intake.Clearing.AccountRule = "account.("
	infra := setupInfra(t, cfg)
	runtime := api.NewRuntime(cfg, infra)

	_, err := api.NewDomain(runtime)
	if err == nil {
		t.Fatal("expected error for unparseable account rule")
	}
}

func TestNewServesHealth(t *testing.T) {
	cfg := validConfig(t)
	infra := setupInfra(t, cfg)

	handler, err := api.New(context.Background(), cfg, infra)
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/healthz", nil)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status: got %d, want 200", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode healthz body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status: got %q, want ok", body["status"])
	}
	if body["version"] != "0.1.0" {
		t.Errorf("version: got %q, want 0.1.0", body["version"])
	}
}

func TestNewReadinessGating(t *testing.T) {
	cfg := validConfig(t)
	infra := setupInfra(t, cfg)

	handler, err := api.New(context.Background(), cfg, infra)
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/readyz", nil)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz before startup: got %d, want 503", rec.Code)
	}

	infra.Lifecycle.WaitForStartup()

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("readyz after startup: got %d, want 200", rec.Code)
	}
}

func TestNewMountsCaseRoutes(t *testing.T) {
	cfg := validConfig(t)
	infra := setupInfra(t, cfg)

	handler, err := api.New(context.Background(), cfg, infra)
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}

	// No database behind the handler; asserting the route resolves is enough.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/cases", nil)
	handler.ServeHTTP(rec, req)

	if rec.Code == http.StatusNotFound || rec.Code == http.StatusMethodNotAllowed {
		t.Fatalf("case routes not mounted: got %d", rec.Code)
	}
}

func TestNewServesOpenAPISpec(t *testing.T) {
	cfg := validConfig(t)
	infra := setupInfra(t, cfg)

	handler, err := api.New(context.Background(), cfg, infra)
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/openapi.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("openapi.json: got %d, want 200", rec.Code)
	}

	var spec struct {
		OpenAPI string `json:"openapi"`
		Info    struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
		Paths map[string]any `json:"paths"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&spec); err != nil {
		t.Fatalf("decode spec: %v", err)
	}

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("openapi: got %s, want 3.1.0", spec.OpenAPI)
	}
	if spec.Info.Title != "Teller API" {
		t.Errorf("title: got %s, want Teller API", spec.Info.Title)
	}
	if spec.Info.Version != "0.1.0" {
		t.Errorf("version: got %s, want 0.1.0", spec.Info.Version)
	}

	for _, path := range []string{"/cases", "/cases/{id}", "/cases/{id}/process", "/cases/{id}/report"} {
		if _, ok := spec.Paths[path]; !ok {
			t.Errorf("spec missing path %s", path)
		}
	}
}

func TestNewServesDocs(t *testing.T) {
	cfg := validConfig(t)
	infra := setupInfra(t, cfg)

	handler, err := api.New(context.Background(), cfg, infra)
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/docs", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("docs: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content-type: got %s", ct)
	}
	if !strings.Contains(rec.Body.String(), "/openapi.json") {
		t.Error("docs page should reference the served spec")
	}
}
