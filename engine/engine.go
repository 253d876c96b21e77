// Package engine defines the boundary between the DataFrame API and the
// relational engine that executes it. The DataFrame layer translates its
// method surface into calls on Relation; everything behind Relation
// (planning, optimization, execution, storage) belongs to the engine.
//
// Expressions cross the boundary as engine-native SQL text fragments,
// already encoded and quoted by the caller. The engine is the final
// authority on whether a fragment binds: translation-layer checks are a
// convenience, not a guarantee.
package engine

import "context"

// ColumnType describes one output column of a relation.
type ColumnType struct {
	// Name is the column name, case-preserving.
	Name string

	// DatabaseType is the engine's type name for the column
	// (e.g. "INTEGER", "VARCHAR", "DECIMAL(18,3)").
	DatabaseType string

	// Nullable reports whether the column may hold NULL.
	// Engines that cannot tell report true.
	Nullable bool
}

// Relation is an immutable handle to a logical query plan node.
//
// Plan-building methods are synchronous and return a new Relation without
// executing the plan; they may contact the engine to bind the new plan's
// schema and fail if the plan does not bind. Only materializing methods
// (Fetch, Count) and side-effecting ones (CreateView, CopyTo) take a
// context.
//
// Implementations MUST NOT mutate the receiver: every method returns a
// fresh Relation, so handles are freely shareable across goroutines.
type Relation interface {
	// Columns returns the ordered output column names.
	Columns() []string

	// ColumnTypes returns the ordered output column descriptors.
	ColumnTypes() []ColumnType

	// HasColumn reports whether a column with the given name exists,
	// compared case-insensitively.
	HasColumn(name string) bool

	// Alias returns the relation's current alias.
	Alias() string

	// SetAlias returns the same plan under a new alias.
	SetAlias(name string) (Relation, error)

	// Project returns a relation with the given projection expressions.
	Project(exprs ...string) (Relation, error)

	// Filter returns a relation keeping rows for which the condition
	// expression evaluates to true.
	Filter(condition string) (Relation, error)

	// Join joins with another relation on a boolean condition expression.
	// An empty kind together with an empty condition requests the engine's
	// default join. Unrecognized kinds are passed to the engine verbatim.
	Join(other Relation, condition string, kind string) (Relation, error)

	// JoinUsing joins with another relation on equality of the named
	// shared columns.
	JoinUsing(other Relation, columns []string, kind string) (Relation, error)

	// Cross returns the cartesian product with another relation.
	Cross(other Relation) (Relation, error)

	// Union concatenates rows positionally, preserving duplicates.
	Union(other Relation) (Relation, error)

	// Intersect is the duplicate-preserving (bag) positional intersection.
	Intersect(other Relation) (Relation, error)

	// ExceptAll is the duplicate-preserving (bag) positional difference.
	ExceptAll(other Relation) (Relation, error)

	// Distinct removes duplicate rows over all columns.
	Distinct() (Relation, error)

	// Sort orders rows by the given sort expressions.
	Sort(exprs ...string) (Relation, error)

	// Limit keeps at most n rows.
	Limit(n int64) (Relation, error)

	// Aggregate groups by groupExprs and evaluates aggExprs per group.
	// With no groupExprs the aggregation is global.
	Aggregate(groupExprs, aggExprs []string) (Relation, error)

	// RowNumber projects the given projection plus a row_number() computed
	// with the given window text (e.g. `OVER (PARTITION BY "a") AS rn`).
	RowNumber(window, projection string) (Relation, error)

	// CreateView registers the relation's plan under a name in the
	// engine's temporary-view namespace. With replace, an existing view
	// of the same name is overwritten (last writer wins).
	CreateView(ctx context.Context, name string, replace bool) error

	// CopyTo exports the relation's rows to a file in the given format
	// (e.g. "PARQUET", "CSV").
	CopyTo(ctx context.Context, path, format string) error

	// Fetch executes the plan and returns all rows.
	Fetch(ctx context.Context) (*Result, error)

	// Count executes the plan and returns the number of rows.
	Count(ctx context.Context) (int64, error)
}

// Result holds materialized rows. Produced by Fetch, consumed by the
// caller; the engine keeps no reference to it.
type Result struct {
	Columns []string
	Rows    [][]any
}
