// Package dataframe provides an immutable, chainable DataFrame API that
// compiles to relational queries executed by an engine.
//
// The package separates plan building from execution:
//   - DataFrame methods (Select, Filter, Join, GroupBy, ...) never touch
//     the engine; each call derives a new frame over a new relation
//   - Collect, Count, Show and the Writer methods execute the
//     accumulated plan and materialize results
//
// # Quick Start
//
// Build and run a query against an in-memory DuckDB engine:
//
//	package main
//
//	import (
//	    "context"
//	    "log"
//	    "os"
//
//	    "github.com/hugr-lab/dataframe-go"
//	    "github.com/hugr-lab/dataframe-go/engine/duckdb"
//	)
//
//	func main() {
//	    ctx := context.Background()
//
//	    eng, err := duckdb.Open("")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer eng.Close()
//
//	    rel, err := eng.Values(
//	        []string{"age", "name"},
//	        [][]any{{2, "Alice"}, {5, "Bob"}, {7, "Bob"}},
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    df := dataframe.New(rel)
//	    out, err := df.Filter(dataframe.Col("age").Gt(dataframe.Lit(3)))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := out.Show(ctx, os.Stdout); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Architecture
//
// The package follows an interface-based design:
//
//   - DataFrame: immutable facade over a relation plus its bound schema
//   - Column: an expression tree built with Col, Lit, Call and operator
//     methods, encoded to SQL when a frame method consumes it
//   - engine.Relation: the boundary interface an engine implements;
//     engine/duckdb is the bundled implementation
//
// Every transformation returns a new DataFrame; the receiver is never
// modified, so frames can be shared and branched freely.
//
// # Error Policy
//
// Read-oriented operations fail loudly: selecting, grouping by, sorting
// on or renaming from a column that does not exist returns an error
// wrapping ErrUnknownColumn. Removal-oriented operations are lenient:
// Drop and WithColumnsRenamed silently skip names that are not present.
//
// # Execution
//
// All executing calls take a context.Context and respect cancellation.
// Geometry columns materialize as orb geometries in Collect and as WKB
// binary with geoarrow.wkb metadata in ToArrow.
package dataframe
