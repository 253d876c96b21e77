// Package duckdb implements the engine boundary on top of DuckDB.
//
// Every relation is a composed SQL text plus an alias. Plan-building calls
// append one SQL layer and bind the new plan's output schema through a
// zero-row probe, so schema errors surface at the call that introduced
// them, exactly like a binder would report them.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/hugr-lab/dataframe-go/engine"
)

// Engine wraps a DuckDB database handle and builds relations on it.
// Safe for concurrent use; relation construction only reads the handle.
type Engine struct {
	db  *sql.DB
	log *slog.Logger
	seq atomic.Uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for query debug logging.
// Without it, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.log = logger
	}
}

// New creates an Engine over an existing database handle.
// The caller keeps ownership of db.
func New(db *sql.DB, opts ...Option) *Engine {
	e := &Engine{
		db:  db,
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open opens a DuckDB database at the given DSN and wraps it in an Engine.
// An empty DSN opens an in-memory database. The caller must Close the
// engine when done.
func Open(dsn string, opts ...Option) (*Engine, error) {
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return New(db, opts...), nil
}

// Close closes the underlying database handle.
func (e *Engine) Close() error {
	return e.db.Close()
}

// DB exposes the underlying database handle, for callers that need to run
// raw statements alongside relation building.
func (e *Engine) DB() *sql.DB {
	return e.db
}

// Query builds a relation from an arbitrary SELECT statement.
func (e *Engine) Query(query string) (engine.Relation, error) {
	return e.newRelation(query, e.nextAlias())
}

// Table builds a relation scanning a table or view by name.
func (e *Engine) Table(name string) (engine.Relation, error) {
	return e.newRelation("SELECT * FROM "+QuoteIdentifier(name), e.nextAlias())
}

// Values builds a relation from literal rows. Column names set the output
// schema; every row must have one value per column and at least one row is
// required (DuckDB has no empty VALUES clause).
func (e *Engine) Values(columns []string, rows [][]any) (engine.Relation, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("values relation requires at least one column")
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("values relation requires at least one row")
	}

	var tuples []string
	for _, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("values row has %d values, want %d", len(row), len(columns))
		}
		vals := make([]string, len(row))
		for i, v := range row {
			formatted, err := FormatValue(v)
			if err != nil {
				return nil, err
			}
			vals[i] = formatted
		}
		tuples = append(tuples, "("+strings.Join(vals, ", ")+")")
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = QuoteIdentifier(c)
	}

	alias := e.nextAlias()
	query := fmt.Sprintf("SELECT * FROM (VALUES %s) AS %s (%s)",
		strings.Join(tuples, ", "), QuoteIdentifier(alias), strings.Join(quoted, ", "))
	return e.newRelation(query, alias)
}

func (e *Engine) nextAlias() string {
	return fmt.Sprintf("t%d", e.seq.Add(1))
}

// newRelation binds a SQL text by probing its zero-row output schema.
func (e *Engine) newRelation(query, alias string) (*Relation, error) {
	r := &Relation{e: e, query: query, alias: alias}
	r.source = r.wrappedSource()
	cols, err := e.probe(query)
	if err != nil {
		return nil, err
	}
	r.cols = cols
	return r, nil
}

// newJoinRelation is like newRelation but keeps the unwrapped join clause
// as the FROM source, so the next projection or filter still sees the
// joined relations' aliases.
func (e *Engine) newJoinRelation(query, source, alias string) (*Relation, error) {
	r := &Relation{e: e, query: query, source: source, alias: alias}
	cols, err := e.probe(query)
	if err != nil {
		return nil, err
	}
	r.cols = cols
	return r, nil
}

func (e *Engine) probe(query string) ([]engine.ColumnType, error) {
	probe := "SELECT * FROM (" + query + ") AS probe_q LIMIT 0"
	e.log.Debug("duckdb probe", "query", probe)

	rows, err := e.db.QueryContext(context.Background(), probe)
	if err != nil {
		return nil, fmt.Errorf("bind relation: %w", err)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("bind relation: %w", err)
	}

	cols := make([]engine.ColumnType, len(types))
	for i, t := range types {
		nullable, ok := t.Nullable()
		if !ok {
			nullable = true
		}
		cols[i] = engine.ColumnType{
			Name:         t.Name(),
			DatabaseType: t.DatabaseTypeName(),
			Nullable:     nullable,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bind relation: %w", err)
	}
	return cols, nil
}
