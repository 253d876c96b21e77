package dataframe

import (
	"strings"

	"github.com/hugr-lab/dataframe-go/engine"
)

// TypeKind is the semantic type tag of a schema field, derived from the
// engine's type name. It groups engine types into the categories the
// translation layer cares about; the engine's name stays available on the
// field for anything finer-grained.
type TypeKind string

const (
	KindBoolean   TypeKind = "BOOLEAN"
	KindInteger   TypeKind = "INTEGER"  // all signed integer widths
	KindUnsigned  TypeKind = "UNSIGNED" // all unsigned integer widths
	KindFloat     TypeKind = "FLOAT"    // FLOAT and DOUBLE
	KindDecimal   TypeKind = "DECIMAL"
	KindString    TypeKind = "STRING"
	KindBlob      TypeKind = "BLOB"
	KindDate      TypeKind = "DATE"
	KindTime      TypeKind = "TIME"
	KindTimestamp TypeKind = "TIMESTAMP"
	KindInterval  TypeKind = "INTERVAL"
	KindUUID      TypeKind = "UUID"
	KindGeometry  TypeKind = "GEOMETRY"
	KindList      TypeKind = "LIST"
	KindStruct    TypeKind = "STRUCT"
	KindMap       TypeKind = "MAP"
	KindUnknown   TypeKind = "UNKNOWN"
)

// Numeric reports whether the kind is a numeric category.
func (k TypeKind) Numeric() bool {
	switch k {
	case KindInteger, KindUnsigned, KindFloat, KindDecimal:
		return true
	}
	return false
}

// Field is one column of a schema: case-preserving name, semantic kind,
// the engine's own type name, and nullability.
type Field struct {
	Name         string
	Type         TypeKind
	DatabaseType string
	Nullable     bool
}

// Schema is the ordered field list of a relation. Derived once at
// DataFrame construction and never mutated; lookups are case-insensitive
// and resolve to the first matching field.
type Schema []Field

// Names returns the ordered column names.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Index returns the position of the first field matching name
// case-insensitively, or -1.
func (s Schema) Index(name string) int {
	for i, f := range s {
		if strings.EqualFold(f.Name, name) {
			return i
		}
	}
	return -1
}

// Field returns the first field matching name case-insensitively.
func (s Schema) Field(name string) (Field, bool) {
	if i := s.Index(name); i >= 0 {
		return s[i], true
	}
	return Field{}, false
}

// Has reports whether a field with the given name exists.
func (s Schema) Has(name string) bool {
	return s.Index(name) >= 0
}

// typeKindOf maps an engine type name onto a semantic kind. Parameterized
// names (DECIMAL(18,3)) match on their base; list types match on their
// element suffix.
func typeKindOf(databaseType string) TypeKind {
	name := strings.ToUpper(strings.TrimSpace(databaseType))
	if i := strings.IndexByte(name, '('); i > 0 {
		name = strings.TrimSpace(name[:i])
	}
	if strings.HasSuffix(name, "[]") {
		return KindList
	}

	switch name {
	case "BOOLEAN", "BOOL", "LOGICAL":
		return KindBoolean
	case "TINYINT", "SMALLINT", "INTEGER", "INT", "BIGINT", "HUGEINT":
		return KindInteger
	case "UTINYINT", "USMALLINT", "UINTEGER", "UBIGINT", "UHUGEINT":
		return KindUnsigned
	case "FLOAT", "REAL", "DOUBLE":
		return KindFloat
	case "DECIMAL", "NUMERIC":
		return KindDecimal
	case "VARCHAR", "CHAR", "TEXT", "STRING", "ENUM":
		return KindString
	case "BLOB", "BYTEA", "BINARY", "VARBINARY":
		return KindBlob
	case "DATE":
		return KindDate
	case "TIME", "TIME WITH TIME ZONE":
		return KindTime
	case "TIMESTAMP", "DATETIME", "TIMESTAMP WITH TIME ZONE",
		"TIMESTAMP_S", "TIMESTAMP_MS", "TIMESTAMP_NS":
		return KindTimestamp
	case "INTERVAL":
		return KindInterval
	case "UUID":
		return KindUUID
	case "GEOMETRY", "WKB_BLOB":
		return KindGeometry
	case "LIST", "ARRAY":
		return KindList
	case "STRUCT":
		return KindStruct
	case "MAP":
		return KindMap
	default:
		return KindUnknown
	}
}

func schemaOf(rel engine.Relation) Schema {
	types := rel.ColumnTypes()
	s := make(Schema, len(types))
	for i, t := range types {
		s[i] = Field{
			Name:         t.Name,
			Type:         typeKindOf(t.DatabaseType),
			DatabaseType: t.DatabaseType,
			Nullable:     t.Nullable,
		}
	}
	return s
}
