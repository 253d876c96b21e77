package dataframe

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// encodeSQL converts an expression tree to engine-native SQL text. The
// switch over exprKind is exhaustive; literal formatting can fail for
// value kinds with no literal form.
func (c *Column) encodeSQL() (string, error) {
	switch c.kind {
	case exprColumn:
		if c.table != "" {
			return quoteIdentifier(c.table) + "." + quoteIdentifier(c.name), nil
		}
		return quoteIdentifier(c.name), nil

	case exprLiteral:
		return formatLiteral(c.value)

	case exprBinary:
		left, err := c.left.encodeSQL()
		if err != nil {
			return "", err
		}
		right, err := c.right.encodeSQL()
		if err != nil {
			return "", err
		}
		return "(" + left + " " + c.op + " " + right + ")", nil

	case exprUnary:
		child, err := c.left.encodeSQL()
		if err != nil {
			return "", err
		}
		if c.op == "NOT" {
			return "NOT (" + child + ")", nil
		}
		// Postfix operators: IS NULL, IS NOT NULL.
		return "(" + child + " " + c.op + ")", nil

	case exprAlias:
		child, err := c.left.encodeSQL()
		if err != nil {
			return "", err
		}
		return child + " AS " + quoteIdentifier(c.alias), nil

	case exprCast:
		child, err := c.left.encodeSQL()
		if err != nil {
			return "", err
		}
		return "CAST(" + child + " AS " + c.castType + ")", nil

	case exprSort:
		child, err := c.left.encodeSQL()
		if err != nil {
			return "", err
		}
		if c.desc {
			return child + " DESC", nil
		}
		return child + " ASC", nil

	case exprStar:
		if len(c.exclude) == 0 {
			return "*", nil
		}
		quoted := make([]string, len(c.exclude))
		for i, name := range c.exclude {
			quoted[i] = quoteIdentifier(name)
		}
		return "* EXCLUDE (" + strings.Join(quoted, ", ") + ")", nil

	case exprFunc:
		args := make([]string, len(c.args))
		for i, a := range c.args {
			encoded, err := a.encodeSQL()
			if err != nil {
				return "", err
			}
			args[i] = encoded
		}
		return c.name + "(" + strings.Join(args, ", ") + ")", nil

	default:
		return "", fmt.Errorf("%w: unsupported expression kind %d", ErrTypeMismatch, c.kind)
	}
}

// formatLiteral formats a Go value as a SQL literal.
func formatLiteral(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case bool:
		if val {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int:
		return strconv.Itoa(val), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case string:
		return quoteLiteral(val), nil
	case []byte:
		// DuckDB consumes \x plus exactly two hex digits per byte, so the
		// escape must repeat for every byte.
		var sb strings.Builder
		sb.WriteByte('\'')
		for _, b := range val {
			fmt.Fprintf(&sb, "\\x%02x", b)
		}
		sb.WriteString("'::BLOB")
		return sb.String(), nil
	case time.Time:
		return "TIMESTAMP " + quoteLiteral(val.UTC().Format("2006-01-02 15:04:05.000000")), nil
	default:
		return "", fmt.Errorf("%w: cannot use %T as a literal", ErrTypeMismatch, v)
	}
}

// quoteLiteral returns a SQL string literal with single quotes doubled.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// quoteIdentifier always double-quotes, so names that collide with
// keywords or carry unusual characters stay valid. DuckDB matches quoted
// identifiers case-insensitively, so always quoting never changes which
// column a name resolves to.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
