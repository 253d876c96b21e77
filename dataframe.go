package dataframe

import (
	"context"
	"fmt"

	"github.com/hugr-lab/dataframe-go/engine"
	"github.com/hugr-lab/dataframe-go/internal/recovery"
)

// DataFrame is an immutable, chainable handle over one engine relation.
// Every method translates its arguments into a single engine primitive
// call and wraps the result in a new DataFrame with a freshly derived
// schema snapshot; the receiver is never modified, so DataFrames are
// freely shareable across goroutines.
type DataFrame struct {
	rel    engine.Relation
	schema Schema
}

// New wraps an engine relation into a DataFrame, deriving the schema
// snapshot from the relation.
func New(rel engine.Relation) *DataFrame {
	return &DataFrame{rel: rel, schema: schemaOf(rel)}
}

// Relation exposes the underlying engine relation.
func (df *DataFrame) Relation() engine.Relation {
	return df.rel
}

// Schema returns the DataFrame's ordered field list.
func (df *DataFrame) Schema() Schema {
	s := make(Schema, len(df.schema))
	copy(s, df.schema)
	return s
}

// Columns returns the ordered column names.
//
// Example:
//
//	df.Columns() // ["age", "name"]
func (df *DataFrame) Columns() []string {
	return df.schema.Names()
}

// HasColumn reports whether the named column exists, case-insensitively.
func (df *DataFrame) HasColumn(name string) bool {
	return df.schema.Has(name)
}

// Col returns the named column as an expression qualified by the
// DataFrame's relation alias. Unknown names fail with ErrUnknownColumn.
//
// Example:
//
//	age, _ := df.Col("age")
//	adults, _ := df.Filter(age.Gt(dataframe.Lit(18)))
func (df *DataFrame) Col(name string) (*Column, error) {
	if !df.schema.Has(name) {
		return nil, &UnknownColumnError{Name: name}
	}
	return &Column{kind: exprColumn, table: df.rel.Alias(), name: name}, nil
}

// ColAt returns the column at the given 0-based position.
func (df *DataFrame) ColAt(index int) (*Column, error) {
	if index < 0 || index >= len(df.schema) {
		return nil, fmt.Errorf("%w: column index %d out of range [0, %d)", ErrInvalidArgument, index, len(df.schema))
	}
	return Col(df.schema[index].Name), nil
}

func (df *DataFrame) wrap(rel engine.Relation, err error) (*DataFrame, error) {
	if err != nil {
		return nil, err
	}
	return New(rel), nil
}

// Select projects the given columns. Arguments may be column names,
// expressions, or one slice of either; unknown names fail with
// ErrUnknownColumn.
//
// Example:
//
//	df.Select("name", dataframe.Col("age").Add(dataframe.Lit(1)).Alias("age1"))
func (df *DataFrame) Select(cols ...any) (*DataFrame, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: select requires at least one column", ErrInvalidArgument)
	}
	normalized, err := df.normalizeColumns(cols, normalizeOpts{checkNames: true})
	if err != nil {
		return nil, err
	}
	exprs, err := encodeColumns(normalized)
	if err != nil {
		return nil, err
	}
	return df.wrap(df.rel.Project(exprs...))
}

// SelectExpr projects raw engine SQL expressions, passed through verbatim.
func (df *DataFrame) SelectExpr(exprs ...string) (*DataFrame, error) {
	if len(exprs) == 0 {
		return nil, fmt.Errorf("%w: select requires at least one expression", ErrInvalidArgument)
	}
	return df.wrap(df.rel.Project(exprs...))
}

// Filter keeps rows matching the condition: a boolean *Column expression
// or a raw SQL predicate string.
//
// Example:
//
//	df.Filter(dataframe.Col("age").Gt(dataframe.Lit(3)))
//	df.Filter("age > 3")
func (df *DataFrame) Filter(condition any) (*DataFrame, error) {
	switch cond := condition.(type) {
	case *Column:
		if cond == nil {
			return nil, typeMismatch("condition", condition)
		}
		encoded, err := cond.encodeSQL()
		if err != nil {
			return nil, err
		}
		return df.wrap(df.rel.Filter(encoded))
	case string:
		if cond == "" {
			return nil, fmt.Errorf("%w: filter condition cannot be empty", ErrInvalidArgument)
		}
		return df.wrap(df.rel.Filter(cond))
	default:
		return nil, typeMismatch("condition", condition)
	}
}

// Where is an alias for Filter.
func (df *DataFrame) Where(condition any) (*DataFrame, error) {
	return df.Filter(condition)
}

// Sort orders rows by the given sort keys: column names, expressions
// (optionally marked with Asc/Desc), or 1-based ordinals where a negative
// ordinal sorts the |k|-th column descending and 0 is invalid.
//
// Example:
//
//	df.Sort(dataframe.Col("age").Desc(), "name")
//	df.Sort(1)  // first column ascending
//	df.Sort(-1) // first column descending
func (df *DataFrame) Sort(cols ...any) (*DataFrame, error) {
	return df.sortWith(cols, nil)
}

// OrderBy is an alias for Sort.
func (df *DataFrame) OrderBy(cols ...any) (*DataFrame, error) {
	return df.Sort(cols...)
}

// SortWithAscending sorts with an explicit direction parameter: a single
// bool applying to every key, or a []bool of per-key directions with the
// same length as cols. Any other ascending value fails with
// ErrInvalidArgument.
//
// Example:
//
//	df.SortWithAscending([]any{"age", "name"}, []bool{false, true})
func (df *DataFrame) SortWithAscending(cols []any, ascending any) (*DataFrame, error) {
	if ascending == nil {
		return nil, fmt.Errorf("%w: ascending cannot be nil", ErrInvalidArgument)
	}
	return df.sortWith(cols, ascending)
}

func (df *DataFrame) sortWith(cols []any, ascending any) (*DataFrame, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: sort requires at least one column", ErrInvalidArgument)
	}
	normalized, err := df.normalizeColumns(cols, normalizeOpts{checkNames: true, allowOrdinal: true})
	if err != nil {
		return nil, err
	}

	switch asc := ascending.(type) {
	case nil:
	case bool:
		if !asc {
			for i, c := range normalized {
				normalized[i] = descend(c)
			}
		}
	case []bool:
		if len(asc) != len(normalized) {
			return nil, fmt.Errorf("%w: ascending has %d entries for %d sort columns",
				ErrInvalidArgument, len(asc), len(normalized))
		}
		for i, up := range asc {
			if !up {
				normalized[i] = descend(normalized[i])
			}
		}
	default:
		return nil, fmt.Errorf("%w: ascending must be a bool or []bool, got %T", ErrInvalidArgument, ascending)
	}

	exprs, err := encodeColumns(normalized)
	if err != nil {
		return nil, err
	}
	return df.wrap(df.rel.Sort(exprs...))
}

// descend flips a sort key to descending, replacing any existing marker.
func descend(c *Column) *Column {
	if c.kind == exprSort {
		return c.left.Desc()
	}
	return c.Desc()
}

// Limit keeps at most n rows.
func (df *DataFrame) Limit(n int64) (*DataFrame, error) {
	return df.wrap(df.rel.Limit(n))
}

// Alias returns the DataFrame under a new relation alias, so identically
// named columns of two joined frames can be disambiguated through
// qualified references.
func (df *DataFrame) Alias(alias string) (*DataFrame, error) {
	if alias == "" {
		return nil, fmt.Errorf("%w: alias cannot be empty", ErrInvalidArgument)
	}
	return df.wrap(df.rel.SetAlias(alias))
}

// Transform applies fn to the DataFrame, for chaining reusable
// transformations. A panic inside fn is recovered into an error; a nil
// result is an error.
//
// Example:
//
//	withAge1 := func(d *dataframe.DataFrame) (*dataframe.DataFrame, error) {
//	    return d.WithColumn("age1", dataframe.Col("age").Add(dataframe.Lit(1)))
//	}
//	df2, err := df.Transform(withAge1)
func (df *DataFrame) Transform(fn func(*DataFrame) (*DataFrame, error)) (*DataFrame, error) {
	var out *DataFrame
	err := recovery.RecoverToError("Transform", func() error {
		var err error
		out, err = fn(df)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: transform function returned nil", ErrInvalidArgument)
	}
	return out, nil
}

// CreateOrReplaceTempView registers the DataFrame's plan under a name in
// the engine's temporary-view namespace, overwriting an existing view of
// the same name. This is the only operation with a side effect beyond
// relation construction; concurrent registrations under one name are
// last-writer-wins and must be serialized by the caller if that matters.
func (df *DataFrame) CreateOrReplaceTempView(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: view name cannot be empty", ErrInvalidArgument)
	}
	return df.rel.CreateView(ctx, name, true)
}
