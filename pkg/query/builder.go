package query

import (
	"fmt"
	"reflect"
	"strings"
)

// SortField is one column of an ORDER BY clause. Field is the view
// property name, resolved through the projection at build time.
type SortField struct {
	Field      string
	Descending bool
}

// Builder accumulates WHERE clauses and ordering, then renders SELECT,
// COUNT, and paged variants over the same state. Placeholders are
// numbered in the order conditions are added, starting at $1.
type Builder struct {
	projection  *ProjectionMap
	clauses     []string
	args        []any
	sortFields  []SortField
	defaultSort []SortField
}

// NewBuilder creates a Builder over projection. defaultSort applies
// whenever no explicit ordering is set.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// ParseSortFields splits a comma-separated sort expression into fields.
// A "-" prefix marks a field descending, as in "label,-receivedAt".
// Empty input yields nil.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	var fields []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, descending := strings.CutPrefix(part, "-")
		fields = append(fields, SortField{Field: name, Descending: descending})
	}

	return fields
}

// OrderByFields sets the sort order, overriding the default sort.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.sortFields = fields
	return b
}

// WhereEquals adds an equality condition. Nil values are skipped.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNilValue(value) {
		return b
	}
	b.clauses = append(b.clauses, b.projection.Column(field)+" = "+b.bind(value))
	return b
}

// WhereContains adds a case-insensitive substring match. Nil and empty
// values are skipped.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	b.clauses = append(b.clauses, b.projection.Column(field)+" ILIKE "+b.bind("%"+*value+"%"))
	return b
}

// WhereIn adds an IN condition. Empty slices are skipped.
func (b *Builder) WhereIn(field string, values []any) *Builder {
	if len(values) == 0 {
		return b
	}

	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = b.bind(v)
	}

	clause := fmt.Sprintf("%s IN (%s)", b.projection.Column(field), strings.Join(placeholders, ", "))
	b.clauses = append(b.clauses, clause)
	return b
}

// WhereNullable adds an equality condition, or IS NULL when value is nil.
func (b *Builder) WhereNullable(field string, value any) *Builder {
	col := b.projection.Column(field)
	if isNilValue(value) {
		b.clauses = append(b.clauses, col+" IS NULL")
	} else {
		b.clauses = append(b.clauses, col+" = "+b.bind(value))
	}
	return b
}

// WhereSearch adds one ILIKE match per field, ORed together. Skipped
// when search is nil or empty, or no fields are given.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	pattern := "%" + *search + "%"
	matches := make([]string, len(fields))
	for i, field := range fields {
		matches[i] = b.projection.Column(field) + " ILIKE " + b.bind(pattern)
	}

	b.clauses = append(b.clauses, "("+strings.Join(matches, " OR ")+")")
	return b
}

// Build renders the full SELECT with conditions and ordering.
func (b *Builder) Build() (string, []any) {
	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s%s",
		b.projection.Columns(),
		b.projection.Table(),
		b.whereClause(),
		b.orderByClause(),
	)
	return sql, b.args
}

// BuildCount renders a COUNT(*) over the same conditions.
func (b *Builder) BuildCount() (string, []any) {
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.Table(), b.whereClause())
	return sql, b.args
}

// BuildPage renders a SELECT with LIMIT and OFFSET for the given
// 1-indexed page.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s%s LIMIT %d OFFSET %d",
		b.projection.Columns(),
		b.projection.Table(),
		b.whereClause(),
		b.orderByClause(),
		pageSize,
		(page-1)*pageSize,
	)
	return sql, b.args
}

// BuildSingle renders a lookup by a single key field, ignoring any
// accumulated conditions.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	sql := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		b.projection.Columns(),
		b.projection.Table(),
		b.projection.Column(idField),
	)
	return sql, []any{id}
}

// BuildSingleOrNull renders the conditioned SELECT capped at one row.
func (b *Builder) BuildSingleOrNull() (string, []any) {
	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s LIMIT 1",
		b.projection.Columns(),
		b.projection.Table(),
		b.whereClause(),
	)
	return sql, b.args
}

// bind stores the argument and returns its placeholder.
func (b *Builder) bind(value any) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *Builder) whereClause() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

func (b *Builder) orderByClause() string {
	fields := b.sortFields
	if len(fields) == 0 {
		fields = b.defaultSort
	}
	if len(fields) == 0 {
		return ""
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		direction := "ASC"
		if f.Descending {
			direction = "DESC"
		}
		parts[i] = b.projection.Column(f.Field) + " " + direction
	}

	return " ORDER BY " + strings.Join(parts, ", ")
}

func isNilValue(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}

	return false
}
