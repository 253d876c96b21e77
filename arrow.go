package dataframe

import (
	"context"
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ToArrow executes the plan and returns the result as a single Arrow record.
// The caller owns the record and must call Release. Pass nil to use the
// default allocator.
//
// Geometry columns are exported as WKB binary with geoarrow.wkb extension
// metadata so downstream consumers can recognize them.
func (df *DataFrame) ToArrow(ctx context.Context, alloc memory.Allocator) (arrow.Record, error) {
	if alloc == nil {
		alloc = memory.DefaultAllocator
	}

	res, err := df.rel.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	fields := make([]arrow.Field, len(df.schema))
	for i, f := range df.schema {
		fields[i] = arrowField(f)
	}
	schema := arrow.NewSchema(fields, nil)

	builder := array.NewRecordBuilder(alloc, schema)
	defer builder.Release()

	for _, row := range res.Rows {
		for ci, fb := range builder.Fields() {
			if ci >= len(row) {
				fb.AppendNull()
				continue
			}
			if err := appendValue(fb, row[ci]); err != nil {
				return nil, fmt.Errorf("column %q: %w", df.schema[ci].Name, err)
			}
		}
	}

	return builder.NewRecord(), nil
}

func arrowField(f Field) arrow.Field {
	var dt arrow.DataType
	var md arrow.Metadata

	switch f.Type {
	case KindBoolean:
		dt = arrow.FixedWidthTypes.Boolean
	case KindInteger, KindUnsigned:
		dt = arrow.PrimitiveTypes.Int64
	case KindFloat, KindDecimal:
		dt = arrow.PrimitiveTypes.Float64
	case KindDate:
		dt = arrow.FixedWidthTypes.Date32
	case KindTimestamp:
		dt = arrow.FixedWidthTypes.Timestamp_us
	case KindBlob:
		dt = arrow.BinaryTypes.Binary
	case KindGeometry:
		dt = arrow.BinaryTypes.Binary
		md = arrow.MetadataFrom(map[string]string{
			"ARROW:extension:name": "geoarrow.wkb",
		})
	default:
		dt = arrow.BinaryTypes.String
	}

	return arrow.Field{
		Name:     f.Name,
		Type:     dt,
		Nullable: f.Nullable,
		Metadata: md,
	}
}

func appendValue(fb array.Builder, v any) error {
	if v == nil {
		fb.AppendNull()
		return nil
	}

	switch b := fb.(type) {
	case *array.BooleanBuilder:
		val, ok := v.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", v)
		}
		b.Append(val)
	case *array.Int64Builder:
		val, err := toInt64(v)
		if err != nil {
			return err
		}
		b.Append(val)
	case *array.Float64Builder:
		val, err := toFloat64(v)
		if err != nil {
			return err
		}
		b.Append(val)
	case *array.Date32Builder:
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("expected time.Time, got %T", v)
		}
		b.Append(arrow.Date32FromTime(t))
	case *array.TimestampBuilder:
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("expected time.Time, got %T", v)
		}
		ts, err := arrow.TimestampFromTime(t, arrow.Microsecond)
		if err != nil {
			return err
		}
		b.Append(ts)
	case *array.BinaryBuilder:
		raw, ok := v.([]byte)
		if !ok {
			return fmt.Errorf("expected []byte, got %T", v)
		}
		b.Append(raw)
	case *array.StringBuilder:
		if s, ok := v.(string); ok {
			b.Append(s)
		} else {
			b.Append(fmt.Sprintf("%v", v))
		}
	default:
		return fmt.Errorf("unsupported builder type %T", fb)
	}
	return nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected float, got %T", v)
	}
}
