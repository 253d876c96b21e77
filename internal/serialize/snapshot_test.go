package serialize

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestSnapshotRoundTrip(t *testing.T) {
	in := &Snapshot{
		Header: Header{
			Columns:   []string{"id", "name", "score"},
			Types:     []string{"INTEGER", "VARCHAR", "DOUBLE"},
			CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		},
		Values: [][]any{
			{int64(1), "Alice", 1.5},
			{int64(2), "Bob", 2.5},
			{int64(3), nil, nil},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, in); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	out, err := Read(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if out.Header.Rows != 3 {
		t.Errorf("header rows = %d, want 3", out.Header.Rows)
	}
	if len(out.Header.Columns) != 3 || out.Header.Columns[1] != "name" {
		t.Errorf("unexpected columns: %v", out.Header.Columns)
	}
	if len(out.Header.Types) != 3 || out.Header.Types[2] != "DOUBLE" {
		t.Errorf("unexpected types: %v", out.Header.Types)
	}
	if !out.Header.CreatedAt.Equal(in.Header.CreatedAt) {
		t.Errorf("created at = %v, want %v", out.Header.CreatedAt, in.Header.CreatedAt)
	}

	if len(out.Values) != 3 {
		t.Fatalf("row count = %d, want 3", len(out.Values))
	}
	// Integer widths may narrow through the codec; compare rendered values.
	for i, row := range in.Values {
		if len(out.Values[i]) != len(row) {
			t.Fatalf("row %d width = %d, want %d", i, len(out.Values[i]), len(row))
		}
		for j, v := range row {
			if fmt.Sprint(out.Values[i][j]) != fmt.Sprint(v) {
				t.Errorf("value [%d][%d] = %v, want %v", i, j, out.Values[i][j], v)
			}
		}
	}
}

func TestSnapshotEmptyRows(t *testing.T) {
	in := &Snapshot{
		Header: Header{Columns: []string{"id"}, Types: []string{"INTEGER"}},
	}

	var buf bytes.Buffer
	if err := Write(&buf, in); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out, err := Read(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if out.Header.Rows != 0 || len(out.Values) != 0 {
		t.Fatalf("expected empty snapshot, got %d rows", len(out.Values))
	}
}

func TestWriteNilSnapshot(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err == nil {
		t.Fatal("expected nil snapshot to fail")
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	_, err := Read(strings.NewReader("XXXXXXXXsome other data"))
	if err == nil || !strings.Contains(err.Error(), "not a snapshot") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadRejectsTruncatedStream(t *testing.T) {
	var buf bytes.Buffer
	in := &Snapshot{
		Header: Header{Columns: []string{"id"}, Types: []string{"INTEGER"}},
		Values: [][]any{{int64(1)}},
	}
	if err := Write(&buf, in); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	truncated := buf.Bytes()[:buf.Len()/2]
	if _, err := Read(bytes.NewReader(truncated)); err == nil {
		t.Fatal("expected truncated stream to fail")
	}
}
