// Package openapi builds OpenAPI 3.1 documents programmatically, enough
// of the object model for a JSON REST API plus helpers for the common
// shapes.
package openapi

// Info is the OpenAPI info object.
type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// Server is one entry of the servers list.
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// PathItem holds the operations available on one path.
type PathItem struct {
	Get    *Operation `json:"get,omitempty"`
	Post   *Operation `json:"post,omitempty"`
	Put    *Operation `json:"put,omitempty"`
	Delete *Operation `json:"delete,omitempty"`
}

// Operation describes one method on a path. Response keys are status
// codes; encoding/json renders the integer keys as strings.
type Operation struct {
	Tags        []string          `json:"tags,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Parameters  []*Parameter      `json:"parameters,omitempty"`
	RequestBody *RequestBody      `json:"requestBody,omitempty"`
	Responses   map[int]*Response `json:"responses"`
}

// Parameter is a path or query parameter.
type Parameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"`
	Description string  `json:"description,omitempty"`
	Required    bool    `json:"required,omitempty"`
	Schema      *Schema `json:"schema"`
}

// RequestBody describes an operation's request payload by media type.
type RequestBody struct {
	Description string                `json:"description,omitempty"`
	Required    bool                  `json:"required,omitempty"`
	Content     map[string]*MediaType `json:"content"`
}

// Response describes one status code's payload, or points at a shared
// component response through Ref.
type Response struct {
	Description string                `json:"description"`
	Content     map[string]*MediaType `json:"content,omitempty"`
	Ref         string                `json:"$ref,omitempty"`
}

// MediaType pairs a media type with its schema.
type MediaType struct {
	Schema *Schema `json:"schema,omitempty"`
}

// Schema is the JSON Schema subset used in this document. Ref, when
// set, replaces the inline definition with a component reference.
type Schema struct {
	Ref string `json:"$ref,omitempty"`

	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Description string `json:"description,omitempty"`

	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
	Items      *Schema            `json:"items,omitempty"`

	Example any   `json:"example,omitempty"`
	Default any   `json:"default,omitempty"`
	Enum    []any `json:"enum,omitempty"`

	Minimum   *float64 `json:"minimum,omitempty"`
	Maximum   *float64 `json:"maximum,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
}

// Components holds the reusable schemas and responses.
type Components struct {
	Schemas   map[string]*Schema   `json:"schemas,omitempty"`
	Responses map[string]*Response `json:"responses,omitempty"`
}

// Component reference prefixes per the OpenAPI document layout.
const (
	schemaRefPrefix   = "#/components/schemas/"
	responseRefPrefix = "#/components/responses/"
)

// SchemaRef points at a component schema by name.
func SchemaRef(name string) *Schema {
	return &Schema{Ref: schemaRefPrefix + name}
}

// ResponseRef points at a component response by name.
func ResponseRef(name string) *Response {
	return &Response{Ref: responseRefPrefix + name}
}

// jsonContent wraps a component schema reference as an
// application/json content map.
func jsonContent(schemaName string) map[string]*MediaType {
	return map[string]*MediaType{
		"application/json": {Schema: SchemaRef(schemaName)},
	}
}

// RequestBodyJSON builds a JSON request body referencing a component
// schema.
func RequestBodyJSON(schemaName string, required bool) *RequestBody {
	return &RequestBody{
		Required: required,
		Content:  jsonContent(schemaName),
	}
}

// ResponseJSON builds a JSON response referencing a component schema.
func ResponseJSON(description, schemaName string) *Response {
	return &Response{
		Description: description,
		Content:     jsonContent(schemaName),
	}
}

func param(in, name, description string, required bool, schema *Schema) *Parameter {
	return &Parameter{
		Name:        name,
		In:          in,
		Required:    required,
		Description: description,
		Schema:      schema,
	}
}

// PathParam builds a required UUID path parameter.
func PathParam(name, description string) *Parameter {
	return param("path", name, description, true, &Schema{Type: "string", Format: "uuid"})
}

// QueryParam builds a query parameter of the given schema type.
func QueryParam(name, typ, description string, required bool) *Parameter {
	return param("query", name, description, required, &Schema{Type: typ})
}
