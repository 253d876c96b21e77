// Package serialize writes and reads row snapshots: a msgpack-encoded
// header and row payload wrapped in a ZStandard stream.
package serialize

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// magic identifies a snapshot stream and its format version.
var magic = []byte{'D', 'F', 'S', 'N', 'A', 'P', 0, 1}

// Header describes the rows that follow it.
type Header struct {
	Columns   []string  `msgpack:"columns"`
	Types     []string  `msgpack:"types"`
	Rows      int64     `msgpack:"rows"`
	CreatedAt time.Time `msgpack:"created_at"`
}

// Snapshot is a fully materialized result set.
type Snapshot struct {
	Header Header
	Values [][]any
}

// Write encodes the snapshot to w. The stream starts with a plain magic
// prefix so readers can reject foreign data before decompressing.
func Write(w io.Writer, snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("nil snapshot")
	}
	if _, err := w.Write(magic); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}

	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}

	snap.Header.Rows = int64(len(snap.Values))
	enc := msgpack.NewEncoder(zw)
	if err := enc.Encode(&snap.Header); err != nil {
		zw.Close()
		return fmt.Errorf("encode header: %w", err)
	}
	for i, row := range snap.Values {
		if err := enc.Encode(row); err != nil {
			zw.Close()
			return fmt.Errorf("encode row %d: %w", i, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zstd stream: %w", err)
	}
	return nil
}

// Read decodes a snapshot written by Write.
func Read(r io.Reader) (*Snapshot, error) {
	prefix := make([]byte, len(magic))
	if _, err := io.ReadFull(r, prefix); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if !bytes.Equal(prefix, magic) {
		return nil, fmt.Errorf("not a snapshot stream")
	}

	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer zr.Close()

	dec := msgpack.NewDecoder(zr)
	var snap Snapshot
	if err := dec.Decode(&snap.Header); err != nil {
		return nil, fmt.Errorf("decode header: %w", err)
	}
	if snap.Header.Rows < 0 {
		return nil, fmt.Errorf("invalid row count %d", snap.Header.Rows)
	}

	snap.Values = make([][]any, 0, snap.Header.Rows)
	for i := int64(0); i < snap.Header.Rows; i++ {
		var row []any
		if err := dec.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode row %d: %w", i, err)
		}
		snap.Values = append(snap.Values, row)
	}
	return &snap, nil
}
