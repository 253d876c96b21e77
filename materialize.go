package dataframe

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/orb/encoding/wkb"
)

// Materialization: the calls that execute the plan and leave the relation
// graph. No further chaining happens on their results.

// Collect executes the plan and returns all rows. Geometry columns are
// decoded from WKB into orb geometries.
//
// Example:
//
//	rows, err := df.Collect(ctx)
func (df *DataFrame) Collect(ctx context.Context) ([]Row, error) {
	res, err := df.rel.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	var geomCols []int
	for i, f := range df.schema {
		if f.Type == KindGeometry {
			geomCols = append(geomCols, i)
		}
	}

	rows := make([]Row, len(res.Rows))
	for i, values := range res.Rows {
		for _, gi := range geomCols {
			if gi >= len(values) {
				continue
			}
			raw, ok := values[gi].([]byte)
			if !ok {
				continue
			}
			if geom, err := wkb.Unmarshal(raw); err == nil {
				values[gi] = geom
			}
		}
		rows[i] = NewRow(res.Columns, values)
	}
	return rows, nil
}

// Count executes the plan and returns the number of rows.
func (df *DataFrame) Count(ctx context.Context) (int64, error) {
	return df.rel.Count(ctx)
}

// Take returns the first num rows.
func (df *DataFrame) Take(ctx context.Context, num int64) ([]Row, error) {
	limited, err := df.Limit(num)
	if err != nil {
		return nil, err
	}
	return limited.Collect(ctx)
}

// Head is an alias for Take.
func (df *DataFrame) Head(ctx context.Context, num int64) ([]Row, error) {
	return df.Take(ctx, num)
}

// First returns the first row. The second result is false when the
// relation is empty.
func (df *DataFrame) First(ctx context.Context) (Row, bool, error) {
	rows, err := df.Take(ctx, 1)
	if err != nil {
		return Row{}, false, err
	}
	if len(rows) == 0 {
		return Row{}, false, nil
	}
	return rows[0], true, nil
}

// Show writes the rows as a bordered fixed-width table.
//
//	+---+-----+
//	|age| name|
//	+---+-----+
//	|  2|Alice|
//	|  5|  Bob|
//	+---+-----+
func (df *DataFrame) Show(ctx context.Context, w io.Writer) error {
	rows, err := df.Collect(ctx)
	if err != nil {
		return err
	}

	names := df.Columns()
	widths := make([]int, len(names))
	for i, n := range names {
		widths[i] = len(n)
	}
	cells := make([][]string, len(rows))
	for ri, row := range rows {
		cells[ri] = make([]string, len(names))
		for ci := range names {
			s := formatCell(row.Value(ci))
			cells[ri][ci] = s
			if len(s) > widths[ci] {
				widths[ci] = len(s)
			}
		}
	}

	border := make([]string, len(names))
	for i, width := range widths {
		border[i] = strings.Repeat("-", width)
	}
	sep := "+" + strings.Join(border, "+") + "+\n"

	writeLine := func(vals []string) error {
		var sb strings.Builder
		sb.WriteByte('|')
		for i, v := range vals {
			fmt.Fprintf(&sb, "%*s|", widths[i], v)
		}
		sb.WriteByte('\n')
		_, err := io.WriteString(w, sb.String())
		return err
	}

	if _, err := io.WriteString(w, sep); err != nil {
		return err
	}
	if err := writeLine(names); err != nil {
		return err
	}
	if _, err := io.WriteString(w, sep); err != nil {
		return err
	}
	for _, row := range cells {
		if err := writeLine(row); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, sep)
	return err
}

func formatCell(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}
