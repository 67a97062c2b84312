package openapi_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/counterfoil/teller/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Teller API", "0.1.0")

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("openapi version: got %s, want 3.1.0", spec.OpenAPI)
	}
	if spec.Info.Title != "Teller API" {
		t.Errorf("title: got %s, want Teller API", spec.Info.Title)
	}
	if spec.Info.Version != "0.1.0" {
		t.Errorf("version: got %s, want 0.1.0", spec.Info.Version)
	}
	if spec.Components == nil {
		t.Fatal("components should not be nil")
	}
	if spec.Paths == nil {
		t.Fatal("paths should not be nil")
	}
}

func TestSpecMetadata(t *testing.T) {
	spec := openapi.NewSpec("Teller API", "0.1.0")
	spec.AddServer("/api")
	spec.SetDescription("Cheque intake and clearing workflow service.")

	if len(spec.Servers) != 1 {
		t.Fatalf("servers: got %d, want 1", len(spec.Servers))
	}
	if spec.Servers[0].URL != "/api" {
		t.Errorf("server url: got %s", spec.Servers[0].URL)
	}
	if spec.Info.Description != "Cheque intake and clearing workflow service." {
		t.Errorf("description: got %s", spec.Info.Description)
	}
}

func TestRefs(t *testing.T) {
	if got := openapi.SchemaRef("Case").Ref; got != "#/components/schemas/Case" {
		t.Errorf("schema ref: got %s", got)
	}
	if got := openapi.ResponseRef("NotFound").Ref; got != "#/components/responses/NotFound" {
		t.Errorf("response ref: got %s", got)
	}
}

func TestRequestBodyJSON(t *testing.T) {
	rb := openapi.RequestBodyJSON("SearchRequest", true)

	if !rb.Required {
		t.Error("required should be true")
	}
	ct, ok := rb.Content["application/json"]
	if !ok {
		t.Fatal("missing application/json content type")
	}
	if ct.Schema.Ref != "#/components/schemas/SearchRequest" {
		t.Errorf("schema ref: got %s", ct.Schema.Ref)
	}
}

func TestResponseJSON(t *testing.T) {
	resp := openapi.ResponseJSON("The processing digest", "Report")

	if resp.Description != "The processing digest" {
		t.Errorf("description: got %s", resp.Description)
	}
	ct, ok := resp.Content["application/json"]
	if !ok {
		t.Fatal("missing application/json content type")
	}
	if ct.Schema.Ref != "#/components/schemas/Report" {
		t.Errorf("schema ref: got %s", ct.Schema.Ref)
	}
}

func TestPathParam(t *testing.T) {
	p := openapi.PathParam("id", "Case id")

	if p.Name != "id" || p.In != "path" {
		t.Errorf("got name=%s in=%s", p.Name, p.In)
	}
	if !p.Required {
		t.Error("path params should be required")
	}
	if p.Schema.Type != "string" || p.Schema.Format != "uuid" {
		t.Errorf("schema: got type=%s format=%s", p.Schema.Type, p.Schema.Format)
	}
}

func TestQueryParam(t *testing.T) {
	p := openapi.QueryParam("status", "string", "Filter by lifecycle status", false)

	if p.Name != "status" || p.In != "query" {
		t.Errorf("got name=%s in=%s", p.Name, p.In)
	}
	if p.Required {
		t.Error("should not be required")
	}
	if p.Schema.Type != "string" {
		t.Errorf("schema type: got %s", p.Schema.Type)
	}
}

func TestNewComponentsDefaults(t *testing.T) {
	c := openapi.NewComponents()

	if _, ok := c.Schemas["PageRequest"]; !ok {
		t.Error("missing default schema: PageRequest")
	}

	for _, name := range []string{"BadRequest", "NotFound", "Conflict"} {
		if _, ok := c.Responses[name]; !ok {
			t.Errorf("missing default response: %s", name)
		}
	}
}

func TestAddSchemasKeepsDefaults(t *testing.T) {
	c := openapi.NewComponents()
	c.AddSchemas(map[string]*openapi.Schema{
		"Case": {Type: "object"},
	})

	if _, ok := c.Schemas["Case"]; !ok {
		t.Error("Case schema not added")
	}
	if _, ok := c.Schemas["PageRequest"]; !ok {
		t.Error("default PageRequest schema should still exist")
	}
}

func TestAddResponsesKeepsDefaults(t *testing.T) {
	c := openapi.NewComponents()
	c.AddResponses(map[string]*openapi.Response{
		"Unauthorized": {Description: "Not authenticated"},
	})

	if _, ok := c.Responses["Unauthorized"]; !ok {
		t.Error("Unauthorized response not added")
	}
	if _, ok := c.Responses["Conflict"]; !ok {
		t.Error("default Conflict response should still exist")
	}
}

func TestMarshalJSONRoundTrip(t *testing.T) {
	spec := openapi.NewSpec("Teller API", "0.1.0")
	spec.Paths["/cases/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get a case",
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Case id")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("The case", "Case"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var parsed struct {
		OpenAPI string                    `json:"openapi"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if parsed.OpenAPI != "3.1.0" {
		t.Errorf("openapi: got %v", parsed.OpenAPI)
	}
	if _, ok := parsed.Paths["/cases/{id}"]["get"]; !ok {
		t.Error("case path operation missing from serialized spec")
	}
}

func TestWriteJSON(t *testing.T) {
	spec := openapi.NewSpec("Teller API", "0.1.0")
	path := filepath.Join(t.TempDir(), "openapi.json")

	if err := openapi.WriteJSON(spec, path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if parsed["openapi"] != "3.1.0" {
		t.Errorf("openapi: got %v", parsed["openapi"])
	}
}

func TestServeSpec(t *testing.T) {
	spec := openapi.NewSpec("Teller API", "0.1.0")
	data, _ := openapi.MarshalJSON(spec)

	handler := openapi.ServeSpec(data)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/openapi.json", nil)

	handler(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content-type: got %s", ct)
	}

	body, _ := io.ReadAll(res.Body)
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("body unmarshal failed: %v", err)
	}
}

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := openapi.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Title != "Teller API" {
		t.Errorf("title: got %s, want Teller API", cfg.Title)
	}
	if cfg.Description != "Cheque intake and clearing workflow service." {
		t.Errorf("description: got %s", cfg.Description)
	}
}

func TestConfigFinalizeEnv(t *testing.T) {
	t.Setenv("TEST_DOCS_TITLE", "Teller Staging API")
	t.Setenv("TEST_DOCS_DESC", "Staging intake service")

	env := &openapi.ConfigEnv{
		Title:       "TEST_DOCS_TITLE",
		Description: "TEST_DOCS_DESC",
	}

	cfg := openapi.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Title != "Teller Staging API" {
		t.Errorf("title: got %s", cfg.Title)
	}
	if cfg.Description != "Staging intake service" {
		t.Errorf("description: got %s", cfg.Description)
	}
}

func TestConfigMerge(t *testing.T) {
	base := openapi.Config{Title: "Teller API", Description: "Base description"}
	overlay := openapi.Config{Title: "Teller Ops API"}
	base.Merge(&overlay)

	if base.Title != "Teller Ops API" {
		t.Errorf("title: got %s", base.Title)
	}
	if base.Description != "Base description" {
		t.Errorf("description should be preserved: got %s", base.Description)
	}
}
