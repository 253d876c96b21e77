package dataframe

import (
	"fmt"
	"strings"
)

// Schema reconciliation: rename/replace planning and union-by-name
// projection. All matching is case-insensitive and resolves to the first
// matching field; a matched name keeps its position, an unmatched
// requested name is appended at the end in request order.

// ColumnSpec pairs an output column name with its expression. Used by
// WithColumns, which needs a deterministic application order that a Go
// map cannot provide.
type ColumnSpec struct {
	Name string
	Col  *Column
}

// WithColumn returns a DataFrame with the named column replaced in place
// when it already exists (case-insensitively), or appended at the end
// otherwise.
//
// Example:
//
//	df.WithColumn("age2", dataframe.Col("age").Add(dataframe.Lit(2)))
func (df *DataFrame) WithColumn(name string, col *Column) (*DataFrame, error) {
	if col == nil {
		return nil, typeMismatch("col", col)
	}
	return df.WithColumns(ColumnSpec{Name: name, Col: col})
}

// WithColumns adds or replaces multiple columns in one projection. Every
// existing column is emitted exactly once in its original order, replaced
// in place when its name matches a spec case-insensitively; specs that
// match no existing column are appended once, at the end, in the order
// given.
//
// Example:
//
//	df.WithColumns(
//	    dataframe.ColumnSpec{Name: "age2", Col: dataframe.Col("age").Add(dataframe.Lit(2))},
//	    dataframe.ColumnSpec{Name: "age3", Col: dataframe.Col("age").Add(dataframe.Lit(3))},
//	)
func (df *DataFrame) WithColumns(specs ...ColumnSpec) (*DataFrame, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: at least one column is required", ErrInvalidArgument)
	}
	for _, spec := range specs {
		if spec.Col == nil {
			return nil, typeMismatch(spec.Name, spec.Col)
		}
	}

	remaining := make([]ColumnSpec, len(specs))
	copy(remaining, specs)

	takeMatch := func(name string) (ColumnSpec, bool) {
		for i, spec := range remaining {
			if strings.EqualFold(spec.Name, name) {
				remaining = append(remaining[:i], remaining[i+1:]...)
				return spec, true
			}
		}
		return ColumnSpec{}, false
	}

	var cols []*Column
	for _, f := range df.schema {
		if spec, ok := takeMatch(f.Name); ok {
			// The requested spelling wins over the relation's spelling.
			cols = append(cols, spec.Col.Alias(spec.Name))
		} else {
			cols = append(cols, Col(f.Name))
		}
	}
	for _, spec := range remaining {
		cols = append(cols, spec.Col.Alias(spec.Name))
	}

	exprs, err := encodeColumns(cols)
	if err != nil {
		return nil, err
	}
	return df.wrap(df.rel.Project(exprs...))
}

// WithColumnRenamed renames one column. The column must exist; unknown
// names fail with ErrUnknownColumn. For the silent batch form see
// WithColumnsRenamed.
func (df *DataFrame) WithColumnRenamed(existing, newName string) (*DataFrame, error) {
	if !df.schema.Has(existing) {
		return nil, &UnknownColumnError{Name: existing}
	}
	return df.WithColumnsRenamed(map[string]string{existing: newName})
}

// WithColumnsRenamed renames multiple columns. Source names absent from
// the schema are silently skipped, so the call is a no-op when nothing
// matches; this deliberately differs from the loud Select/Filter policy.
//
// Example:
//
//	df.WithColumnsRenamed(map[string]string{"age2": "age4", "age3": "age5"})
func (df *DataFrame) WithColumnsRenamed(renames map[string]string) (*DataFrame, error) {
	if len(renames) == 0 {
		return nil, fmt.Errorf("%w: at least one rename is required", ErrInvalidArgument)
	}

	cols := make([]*Column, len(df.schema))
	for i, f := range df.schema {
		c := Col(f.Name)
		for from, to := range renames {
			if strings.EqualFold(from, f.Name) {
				c = c.Alias(to)
				break
			}
		}
		cols[i] = c
	}

	exprs, err := encodeColumns(cols)
	if err != nil {
		return nil, err
	}
	return df.wrap(df.rel.Project(exprs...))
}

// ToDF renames every column positionally. The number of names must match
// the schema exactly or the call fails with ErrColumnCountMismatch.
//
// Example:
//
//	df.ToDF("f1", "f2")
func (df *DataFrame) ToDF(names ...string) (*DataFrame, error) {
	if len(names) != len(df.schema) {
		return nil, &ColumnCountMismatchError{Expected: len(df.schema), Actual: len(names)}
	}
	cols := make([]*Column, len(names))
	for i, name := range names {
		cols[i] = Col(df.schema[i].Name).Alias(name)
	}
	exprs, err := encodeColumns(cols)
	if err != nil {
		return nil, err
	}
	return df.wrap(df.rel.Project(exprs...))
}

// unionByNamePlan computes the projections that align two schemas for a
// name-based union. Without allowMissing, the right side must cover
// exactly the left side's columns or the plan fails with
// ErrSchemaMismatch. With allowMissing, the result schema is the left
// columns in order followed by right-only columns in right order, with
// NULL filler projected for columns absent from either side.
func unionByNamePlan(left, right Schema, allowMissing bool) (leftCols, rightCols []*Column, err error) {
	if !allowMissing {
		var missing []string
		for _, f := range left {
			if !right.Has(f.Name) {
				missing = append(missing, f.Name)
			}
		}
		if len(missing) > 0 || len(left) != len(right) {
			return nil, nil, fmt.Errorf("%w: column sets differ (missing on one side: %v)",
				ErrSchemaMismatch, missing)
		}
		for _, f := range left {
			leftCols = append(leftCols, Col(f.Name))
			rightCols = append(rightCols, Col(f.Name))
		}
		return leftCols, rightCols, nil
	}

	var rightOnly []string
	for _, f := range right {
		if !left.Has(f.Name) {
			rightOnly = append(rightOnly, f.Name)
		}
	}

	for _, f := range left {
		leftCols = append(leftCols, Col(f.Name))
		if right.Has(f.Name) {
			rightCols = append(rightCols, Col(f.Name))
		} else {
			rightCols = append(rightCols, Lit(nil).Alias(f.Name))
		}
	}
	for _, name := range rightOnly {
		leftCols = append(leftCols, Lit(nil).Alias(name))
		rightCols = append(rightCols, Col(name))
	}
	return leftCols, rightCols, nil
}

