package dataframe

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Union concatenates rows positionally, preserving duplicates; column
// correspondence is by position, not name, and the result takes this
// DataFrame's column names. A column count mismatch fails with
// ErrColumnCountMismatch.
//
// Example:
//
//	df1.Union(df2) // UNION ALL semantics; follow with Distinct for set union
func (df *DataFrame) Union(other *DataFrame) (*DataFrame, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: union requires another DataFrame", ErrInvalidArgument)
	}
	if len(df.schema) != len(other.schema) {
		return nil, &ColumnCountMismatchError{Expected: len(df.schema), Actual: len(other.schema)}
	}
	return df.wrap(df.rel.Union(other.rel))
}

// UnionAll is an alias for Union.
func (df *DataFrame) UnionAll(other *DataFrame) (*DataFrame, error) {
	return df.Union(other)
}

// UnionByName unions rows resolving columns by case-insensitive name
// instead of position. Without allowMissingColumns the two column sets
// must match exactly or the call fails with ErrSchemaMismatch; with it,
// the result schema is this DataFrame's columns in order followed by the
// other's extra columns in its order, and cells whose source side lacked
// the column are NULL.
//
// Example:
//
//	df1.UnionByName(df2, false)
//	df1.UnionByName(df2, true) // pad missing columns with NULL
func (df *DataFrame) UnionByName(other *DataFrame, allowMissingColumns bool) (*DataFrame, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: union requires another DataFrame", ErrInvalidArgument)
	}
	leftCols, rightCols, err := unionByNamePlan(df.schema, other.schema, allowMissingColumns)
	if err != nil {
		return nil, err
	}

	leftExprs, err := encodeColumns(leftCols)
	if err != nil {
		return nil, err
	}
	rightExprs, err := encodeColumns(rightCols)
	if err != nil {
		return nil, err
	}

	left, err := df.rel.Project(leftExprs...)
	if err != nil {
		return nil, err
	}
	right, err := other.rel.Project(rightExprs...)
	if err != nil {
		return nil, err
	}
	return df.wrap(left.Union(right))
}

// Intersect returns rows present in both DataFrames with duplicates
// removed: a positional bag intersection followed by a whole-row
// distinct.
func (df *DataFrame) Intersect(other *DataFrame) (*DataFrame, error) {
	all, err := df.IntersectAll(other)
	if err != nil {
		return nil, err
	}
	return all.Distinct()
}

// IntersectAll is the positional, duplicate-preserving intersection.
func (df *DataFrame) IntersectAll(other *DataFrame) (*DataFrame, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: intersect requires another DataFrame", ErrInvalidArgument)
	}
	return df.wrap(df.rel.Intersect(other.rel))
}

// ExceptAll is the positional, duplicate-preserving difference.
func (df *DataFrame) ExceptAll(other *DataFrame) (*DataFrame, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: except requires another DataFrame", ErrInvalidArgument)
	}
	return df.wrap(df.rel.ExceptAll(other.rel))
}

// Distinct removes duplicate rows over all columns.
func (df *DataFrame) Distinct() (*DataFrame, error) {
	return df.wrap(df.rel.Distinct())
}

// DropDuplicates removes duplicate rows, optionally comparing only the
// given subset of columns. With a subset, all original columns are
// preserved and the first row per distinct subset value (in the existing
// row order) is kept: rows are ranked within each subset partition
// through a synthetic row-number column, filtered to rank 1, and the
// synthetic column is dropped again. Unknown subset names fail with
// ErrUnknownColumn.
//
// Example:
//
//	df.DropDuplicates()               // whole-row distinct
//	df.DropDuplicates("name", "age")  // first row per (name, age)
func (df *DataFrame) DropDuplicates(subset ...string) (*DataFrame, error) {
	if len(subset) == 0 {
		return df.Distinct()
	}

	quoted := make([]string, len(subset))
	for i, name := range subset {
		if !df.schema.Has(name) {
			return nil, &UnknownColumnError{Name: name}
		}
		quoted[i] = quoteIdentifier(name)
	}

	// The suffix is randomized so the synthetic column cannot collide
	// with an existing name.
	rankCol := "tmp_col_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	window := "OVER (PARTITION BY " + strings.Join(quoted, ", ") + ") AS " + quoteIdentifier(rankCol)

	ranked, err := df.wrap(df.rel.RowNumber(window, "*"))
	if err != nil {
		return nil, err
	}
	filtered, err := ranked.Filter(quoteIdentifier(rankCol) + " = 1")
	if err != nil {
		return nil, err
	}
	return filtered.Drop(rankCol)
}

// Drop removes the named columns. Unknown names are silently ignored, so
// dropping a name absent from the schema is a no-op; this deliberately
// differs from the loud Select/Filter policy. Arguments may be names or
// column-reference expressions.
//
// Example:
//
//	df.Drop("age")
//	df.Drop("no_such_column") // no-op
func (df *DataFrame) Drop(cols ...any) (*DataFrame, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: drop requires at least one column", ErrInvalidArgument)
	}
	flat, err := flattenArgs(cols)
	if err != nil {
		return nil, err
	}

	var exclude []string
	for _, arg := range flat {
		var name string
		switch v := arg.(type) {
		case string:
			name = v
		case *Column:
			if v == nil {
				return nil, typeMismatch("col", arg)
			}
			n, ok := v.outputName()
			if !ok {
				return nil, typeMismatch("col", arg)
			}
			name = n
		default:
			return nil, typeMismatch("col", arg)
		}
		if f, ok := df.schema.Field(name); ok {
			exclude = append(exclude, f.Name)
		}
	}

	if len(exclude) == 0 {
		return df, nil
	}
	expr, err := StarExclude(exclude...).encodeSQL()
	if err != nil {
		return nil, err
	}
	return df.wrap(df.rel.Project(expr))
}
