package dataframe

import "strings"

// exprKind discriminates Column expression nodes. The set is closed:
// encoding switches over it exhaustively.
type exprKind int

const (
	exprColumn exprKind = iota
	exprLiteral
	exprBinary
	exprUnary
	exprAlias
	exprCast
	exprSort
	exprStar
	exprFunc
)

// Column is an expression over a relation's columns: a column reference,
// a literal, or a composition of both. Columns are immutable; every method
// returns a new Column. A Column carries no data; it only describes a
// transformation the engine evaluates.
type Column struct {
	kind exprKind

	table string // exprColumn: optional relation qualifier
	name  string // exprColumn: column name; exprFunc: function name

	value any // exprLiteral

	op    string  // exprBinary, exprUnary operator
	left  *Column // exprBinary, exprUnary, exprAlias, exprCast, exprSort child
	right *Column // exprBinary

	args []*Column // exprFunc arguments

	alias    string   // exprAlias output name
	castType string   // exprCast target type name
	desc     bool     // exprSort direction
	exclude  []string // exprStar exclusions
}

// Col references a column by name. A dotted name with two non-empty parts
// is treated as relationAlias.columnName; anything else is used verbatim.
func Col(name string) *Column {
	if i := strings.IndexByte(name, '.'); i > 0 && i < len(name)-1 {
		return &Column{kind: exprColumn, table: name[:i], name: name[i+1:]}
	}
	return &Column{kind: exprColumn, name: name}
}

// Lit builds a literal value expression. Supported values are nil, bools,
// integers, floats, strings, []byte and time.Time.
func Lit(value any) *Column {
	return &Column{kind: exprLiteral, value: value}
}

// Star references all columns.
func Star() *Column {
	return &Column{kind: exprStar}
}

// StarExclude references all columns except the named ones.
func StarExclude(names ...string) *Column {
	return &Column{kind: exprStar, exclude: names}
}

// Call builds a function call expression, e.g. Call("lower", Col("name")).
func Call(name string, args ...*Column) *Column {
	return &Column{kind: exprFunc, name: name, args: args}
}

func (c *Column) binary(op string, other *Column) *Column {
	return &Column{kind: exprBinary, op: op, left: c, right: other}
}

// Eq builds c = other.
func (c *Column) Eq(other *Column) *Column { return c.binary("=", other) }

// Neq builds c <> other.
func (c *Column) Neq(other *Column) *Column { return c.binary("<>", other) }

// Gt builds c > other.
func (c *Column) Gt(other *Column) *Column { return c.binary(">", other) }

// Geq builds c >= other.
func (c *Column) Geq(other *Column) *Column { return c.binary(">=", other) }

// Lt builds c < other.
func (c *Column) Lt(other *Column) *Column { return c.binary("<", other) }

// Leq builds c <= other.
func (c *Column) Leq(other *Column) *Column { return c.binary("<=", other) }

// And builds c AND other.
func (c *Column) And(other *Column) *Column { return c.binary("AND", other) }

// Or builds c OR other.
func (c *Column) Or(other *Column) *Column { return c.binary("OR", other) }

// Add builds c + other.
func (c *Column) Add(other *Column) *Column { return c.binary("+", other) }

// Sub builds c - other.
func (c *Column) Sub(other *Column) *Column { return c.binary("-", other) }

// Mul builds c * other.
func (c *Column) Mul(other *Column) *Column { return c.binary("*", other) }

// Div builds c / other.
func (c *Column) Div(other *Column) *Column { return c.binary("/", other) }

// Mod builds c % other.
func (c *Column) Mod(other *Column) *Column { return c.binary("%", other) }

// Not negates a boolean expression.
func (c *Column) Not() *Column {
	return &Column{kind: exprUnary, op: "NOT", left: c}
}

// IsNull builds c IS NULL.
func (c *Column) IsNull() *Column {
	return &Column{kind: exprUnary, op: "IS NULL", left: c}
}

// IsNotNull builds c IS NOT NULL.
func (c *Column) IsNotNull() *Column {
	return &Column{kind: exprUnary, op: "IS NOT NULL", left: c}
}

// Alias names the expression's output column.
func (c *Column) Alias(name string) *Column {
	return &Column{kind: exprAlias, left: c, alias: name}
}

// Cast converts the expression to the given engine type name.
func (c *Column) Cast(typeName string) *Column {
	return &Column{kind: exprCast, left: c, castType: typeName}
}

// Asc marks the expression as an ascending sort key.
func (c *Column) Asc() *Column {
	return &Column{kind: exprSort, left: c}
}

// Desc marks the expression as a descending sort key.
func (c *Column) Desc() *Column {
	return &Column{kind: exprSort, left: c, desc: true}
}

// outputName returns the name the expression's output column resolves to,
// when one can be determined statically.
func (c *Column) outputName() (string, bool) {
	switch c.kind {
	case exprColumn:
		return c.name, true
	case exprAlias:
		return c.alias, true
	case exprSort, exprCast:
		return c.left.outputName()
	default:
		return "", false
	}
}
