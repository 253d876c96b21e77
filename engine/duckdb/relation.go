package duckdb

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hugr-lab/dataframe-go/engine"
)

// Relation is a DuckDB-backed engine relation: a composed SQL text, the
// alias it is known under, and the bound output schema. Immutable; every
// operation returns a new Relation.
type Relation struct {
	e      *Engine
	query  string // full SELECT statement producing the relation
	source string // FROM-clause source the next operation composes over
	alias  string
	cols   []engine.ColumnType
}

var _ engine.Relation = (*Relation)(nil)

// Columns returns the ordered output column names.
func (r *Relation) Columns() []string {
	names := make([]string, len(r.cols))
	for i, c := range r.cols {
		names[i] = c.Name
	}
	return names
}

// ColumnTypes returns the ordered output column descriptors.
func (r *Relation) ColumnTypes() []engine.ColumnType {
	cols := make([]engine.ColumnType, len(r.cols))
	copy(cols, r.cols)
	return cols
}

// HasColumn reports whether the named column exists, case-insensitively.
func (r *Relation) HasColumn(name string) bool {
	for _, c := range r.cols {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// Alias returns the relation's alias.
func (r *Relation) Alias() string {
	return r.alias
}

// SetAlias returns the same plan under a new alias. No rebinding happens;
// the output schema is unchanged.
func (r *Relation) SetAlias(name string) (engine.Relation, error) {
	if name == "" {
		return nil, fmt.Errorf("relation alias cannot be empty")
	}
	nr := &Relation{e: r.e, query: r.query, alias: name, cols: r.cols}
	nr.source = nr.wrappedSource()
	return nr, nil
}

// SQL returns the relation's SQL text. Useful for diagnostics and for
// registering the plan in views.
func (r *Relation) SQL() string {
	return r.query
}

func (r *Relation) wrappedSource() string {
	return "(" + r.query + ") AS " + QuoteIdentifier(r.alias)
}

func (r *Relation) derive(query string) (engine.Relation, error) {
	return r.e.newRelation(query, r.e.nextAlias())
}

// Project returns a relation with the given projection expressions.
func (r *Relation) Project(exprs ...string) (engine.Relation, error) {
	if len(exprs) == 0 {
		return nil, fmt.Errorf("projection requires at least one expression")
	}
	return r.derive("SELECT " + strings.Join(exprs, ", ") + " FROM " + r.source)
}

// Filter returns a relation keeping rows matching the condition.
func (r *Relation) Filter(condition string) (engine.Relation, error) {
	if condition == "" {
		return nil, fmt.Errorf("filter requires a condition")
	}
	return r.derive("SELECT * FROM " + r.source + " WHERE " + condition)
}

// joinKindSQL maps canonical join kinds onto DuckDB join syntax. Unknown
// kinds are forwarded verbatim; DuckDB rejects them at bind time.
func joinKindSQL(kind string) string {
	switch kind {
	case "", "inner":
		return "JOIN"
	case "left":
		return "LEFT JOIN"
	case "right":
		return "RIGHT JOIN"
	case "outer":
		return "FULL JOIN"
	case "semi":
		return "SEMI JOIN"
	case "anti":
		return "ANTI JOIN"
	default:
		return strings.ToUpper(kind) + " JOIN"
	}
}

func (r *Relation) rightSide(other engine.Relation) (*Relation, error) {
	o, ok := other.(*Relation)
	if !ok {
		return nil, fmt.Errorf("cannot join relations from different engines: %T", other)
	}
	return o, nil
}

// Join joins with another relation on a boolean condition. With neither a
// condition nor a kind, the engine's default (comma) join is produced.
func (r *Relation) Join(other engine.Relation, condition, kind string) (engine.Relation, error) {
	o, err := r.rightSide(other)
	if err != nil {
		return nil, err
	}
	var source string
	if condition == "" && kind == "" {
		source = r.wrappedSource() + ", " + o.wrappedSource()
	} else {
		if condition == "" {
			condition = "TRUE"
		}
		source = r.wrappedSource() + " " + joinKindSQL(kind) + " " + o.wrappedSource() + " ON " + condition
	}
	return r.e.newJoinRelation("SELECT * FROM "+source, source, r.e.nextAlias())
}

// JoinUsing joins with another relation on equality of the named shared
// columns. DuckDB emits each shared column once, taking the left side.
func (r *Relation) JoinUsing(other engine.Relation, columns []string, kind string) (engine.Relation, error) {
	o, err := r.rightSide(other)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("join using requires at least one column")
	}
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = QuoteIdentifier(c)
	}
	source := r.wrappedSource() + " " + joinKindSQL(kind) + " " + o.wrappedSource() +
		" USING (" + strings.Join(quoted, ", ") + ")"
	return r.e.newJoinRelation("SELECT * FROM "+source, source, r.e.nextAlias())
}

// Cross returns the cartesian product with another relation.
func (r *Relation) Cross(other engine.Relation) (engine.Relation, error) {
	o, err := r.rightSide(other)
	if err != nil {
		return nil, err
	}
	source := r.wrappedSource() + " CROSS JOIN " + o.wrappedSource()
	return r.e.newJoinRelation("SELECT * FROM "+source, source, r.e.nextAlias())
}

func (r *Relation) setOp(op string, other engine.Relation) (engine.Relation, error) {
	o, err := r.rightSide(other)
	if err != nil {
		return nil, err
	}
	return r.derive("(" + r.query + ") " + op + " (" + o.query + ")")
}

// Union concatenates rows positionally, preserving duplicates.
func (r *Relation) Union(other engine.Relation) (engine.Relation, error) {
	return r.setOp("UNION ALL", other)
}

// Intersect is the bag (duplicate-preserving) positional intersection.
func (r *Relation) Intersect(other engine.Relation) (engine.Relation, error) {
	return r.setOp("INTERSECT ALL", other)
}

// ExceptAll is the bag (duplicate-preserving) positional difference.
func (r *Relation) ExceptAll(other engine.Relation) (engine.Relation, error) {
	return r.setOp("EXCEPT ALL", other)
}

// Distinct removes duplicate rows over all columns.
func (r *Relation) Distinct() (engine.Relation, error) {
	return r.derive("SELECT DISTINCT * FROM " + r.source)
}

// Sort orders rows by the given sort expressions.
func (r *Relation) Sort(exprs ...string) (engine.Relation, error) {
	if len(exprs) == 0 {
		return nil, fmt.Errorf("sort requires at least one expression")
	}
	return r.derive("SELECT * FROM " + r.source + " ORDER BY " + strings.Join(exprs, ", "))
}

// Limit keeps at most n rows.
func (r *Relation) Limit(n int64) (engine.Relation, error) {
	if n < 0 {
		return nil, fmt.Errorf("limit cannot be negative: %d", n)
	}
	return r.derive("SELECT * FROM " + r.source + " LIMIT " + strconv.FormatInt(n, 10))
}

// Aggregate groups by groupExprs and evaluates aggExprs per group.
func (r *Relation) Aggregate(groupExprs, aggExprs []string) (engine.Relation, error) {
	if len(aggExprs) == 0 {
		return nil, fmt.Errorf("aggregate requires at least one aggregate expression")
	}
	sel := append(append([]string{}, groupExprs...), aggExprs...)
	query := "SELECT " + strings.Join(sel, ", ") + " FROM " + r.source
	if len(groupExprs) > 0 {
		// Group by select-list position, so group expressions carrying an
		// output alias stay valid.
		keys := make([]string, len(groupExprs))
		for i := range groupExprs {
			keys[i] = strconv.Itoa(i + 1)
		}
		query += " GROUP BY " + strings.Join(keys, ", ")
	}
	return r.derive(query)
}

// RowNumber projects the given projection plus row_number() with the given
// window text. The window text carries the OVER clause and output name,
// e.g. `OVER (PARTITION BY "a") AS rn`.
func (r *Relation) RowNumber(window, projection string) (engine.Relation, error) {
	if window == "" {
		return nil, fmt.Errorf("row_number requires a window")
	}
	if projection == "" {
		projection = "*"
	}
	return r.derive("SELECT " + projection + ", row_number() " + window + " FROM " + r.source)
}

// CreateView registers the plan as a temporary view.
func (r *Relation) CreateView(ctx context.Context, name string, replace bool) error {
	stmt := "CREATE "
	if replace {
		stmt += "OR REPLACE "
	}
	stmt += "TEMPORARY VIEW " + QuoteIdentifier(name) + " AS " + r.query
	r.e.log.Debug("duckdb create view", "query", stmt)
	if _, err := r.e.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create view %q: %w", name, err)
	}
	return nil
}

// CopyTo exports the relation's rows to a file.
func (r *Relation) CopyTo(ctx context.Context, path, format string) error {
	stmt := "COPY (" + r.query + ") TO " + QuoteLiteral(path) + " (FORMAT " + format + ")"
	r.e.log.Debug("duckdb copy", "query", stmt)
	if _, err := r.e.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("copy to %q: %w", path, err)
	}
	return nil
}

// Fetch executes the plan and returns all rows.
func (r *Relation) Fetch(ctx context.Context) (*engine.Result, error) {
	r.e.log.Debug("duckdb fetch", "query", r.query)
	rows, err := r.e.db.QueryContext(ctx, r.query)
	if err != nil {
		return nil, fmt.Errorf("fetch relation: %w", err)
	}
	defer rows.Close()

	res := &engine.Result{Columns: r.Columns()}
	width := len(res.Columns)
	for rows.Next() {
		values := make([]any, width)
		ptrs := make([]any, width)
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("fetch relation: %w", err)
		}
		res.Rows = append(res.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch relation: %w", err)
	}
	return res, nil
}

// Count executes the plan and returns the number of rows.
func (r *Relation) Count(ctx context.Context) (int64, error) {
	query := "SELECT count(*) FROM " + r.source
	r.e.log.Debug("duckdb count", "query", query)
	var n int64
	if err := r.e.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count relation: %w", err)
	}
	return n, nil
}
