package dataframe

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hugr-lab/dataframe-go/internal/serialize"
)

// Writer exports a frame's rows outside the engine. Obtain one with
// DataFrame.Write.
type Writer struct {
	df *DataFrame
}

// Write returns a writer over the frame's current plan.
//
// Example:
//
//	err := df.Write().Parquet(ctx, "out.parquet")
func (df *DataFrame) Write() *Writer {
	return &Writer{df: df}
}

// Parquet executes the plan and writes the result to a Parquet file. The
// path is resolved by the engine, so anything its filesystem supports
// works, including s3:// style URLs when the engine is configured for
// them.
func (w *Writer) Parquet(ctx context.Context, path string) error {
	return w.df.rel.CopyTo(ctx, path, "PARQUET")
}

// CSV executes the plan and writes the result to a CSV file with a
// header row.
func (w *Writer) CSV(ctx context.Context, path string) error {
	return w.df.rel.CopyTo(ctx, path, "CSV, HEADER")
}

// JSON executes the plan and writes the result as newline-delimited JSON.
func (w *Writer) JSON(ctx context.Context, path string) error {
	return w.df.rel.CopyTo(ctx, path, "JSON")
}

// Snapshot executes the plan and streams a compressed snapshot of the
// rows to out. Snapshots round-trip through ReadSnapshot without an
// engine.
func (w *Writer) Snapshot(ctx context.Context, out io.Writer) error {
	res, err := w.df.rel.Fetch(ctx)
	if err != nil {
		return err
	}

	types := make([]string, len(w.df.schema))
	for i, f := range w.df.schema {
		types[i] = f.DatabaseType
	}

	snap := &serialize.Snapshot{
		Header: serialize.Header{
			Columns:   res.Columns,
			Types:     types,
			CreatedAt: time.Now().UTC(),
		},
		Values: res.Rows,
	}
	if err := serialize.Write(out, snap); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot reads a snapshot produced by Writer.Snapshot and returns
// its rows.
func ReadSnapshot(r io.Reader) ([]Row, error) {
	snap, err := serialize.Read(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	rows := make([]Row, len(snap.Values))
	for i, values := range snap.Values {
		rows[i] = NewRow(snap.Header.Columns, values)
	}
	return rows, nil
}
