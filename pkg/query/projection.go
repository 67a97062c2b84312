// Package query builds parameterized SQL against a projection of view
// names onto qualified columns.
package query

import "strings"

// ProjectionMap resolves view property names to alias-qualified columns
// for one table. Projected columns also define the SELECT list, in the
// order they were registered.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	mapped  map[string]string
	ordered []string
}

// NewProjectionMap creates an empty projection for schema.table under alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		mapped: make(map[string]string),
	}
}

// Project registers a column under the given view property name.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.mapped[viewName] = qualified
	p.ordered = append(p.ordered, qualified)
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the FROM reference, "schema.table alias".
func (p *ProjectionMap) Table() string {
	return p.schema + "." + p.table + " " + p.alias
}

// Column resolves a view property name to its qualified column.
// Unmapped names pass through unchanged.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.mapped[viewName]; ok {
		return col
	}
	return viewName
}

// Columns returns the SELECT list as a comma-separated string.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ordered, ", ")
}

// ColumnList returns the projected columns in registration order.
func (p *ProjectionMap) ColumnList() []string {
	return p.ordered
}
