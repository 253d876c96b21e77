package dataframe

import (
	"fmt"
	"strings"
)

// Row is one materialized result row: an ordered value sequence with a
// parallel field-name sequence. Rows are produced by Collect and its
// derivatives and consumed by the caller; nothing in the translation layer
// holds on to them.
type Row struct {
	fields []string
	values []any
}

// NewRow builds a row from parallel field and value slices.
func NewRow(fields []string, values []any) Row {
	return Row{fields: fields, values: values}
}

// Len returns the number of values.
func (r Row) Len() int {
	return len(r.values)
}

// Fields returns the ordered field names.
func (r Row) Fields() []string {
	return r.fields
}

// Values returns the ordered values.
func (r Row) Values() []any {
	return r.values
}

// Value returns the value at the given 0-based position.
func (r Row) Value(i int) any {
	return r.values[i]
}

// Get returns the value of the first field matching name
// case-insensitively.
func (r Row) Get(name string) (any, bool) {
	for i, f := range r.fields {
		if strings.EqualFold(f, name) {
			return r.values[i], true
		}
	}
	return nil, false
}

// String renders the row in Row(name=value, ...) form.
func (r Row) String() string {
	var sb strings.Builder
	sb.WriteString("Row(")
	for i, f := range r.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%v", f, r.values[i])
	}
	sb.WriteString(")")
	return sb.String()
}
