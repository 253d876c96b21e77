package dataframe

import "fmt"

// Input normalization. Every variadic method accepting "columns or names"
// funnels its arguments through here, so the accepted shapes and the
// single-slice flatten rule are defined exactly once.
//
// Accepted argument kinds form a closed set: a column name (string), a
// 1-based ordinal (int, sort contexts only; negative means descending),
// an expression (*Column), or one slice of these. Anything else fails
// with ErrTypeMismatch.

// normalizeOpts controls context-dependent normalization rules.
type normalizeOpts struct {
	// allowOrdinal permits integer arguments (sort context).
	allowOrdinal bool
	// checkNames makes unknown name strings fail with ErrUnknownColumn.
	// Read operations set it; destructive operations resolve names
	// themselves and skip unknown ones.
	checkNames bool
}

// flattenArgs applies the shared variadic convention: a call may pass
// either f(a, b, c) or f([a, b, c]), but not both at once. A single slice
// argument is unpacked one level; a slice mixed with other arguments is
// rejected.
func flattenArgs(args []any) ([]any, error) {
	if len(args) == 1 {
		switch v := args[0].(type) {
		case []any:
			return v, nil
		case []string:
			out := make([]any, len(v))
			for i, s := range v {
				out[i] = s
			}
			return out, nil
		case []*Column:
			out := make([]any, len(v))
			for i, c := range v {
				out[i] = c
			}
			return out, nil
		}
		return args, nil
	}
	for _, a := range args {
		switch a.(type) {
		case []any, []string, []*Column:
			return nil, typeMismatch("columns", a)
		}
	}
	return args, nil
}

// normalizeColumn converts one argument into a column expression bound to
// the DataFrame's schema. The type switch is the exhaustive case analysis
// over the accepted tagged union.
func (df *DataFrame) normalizeColumn(arg any, opts normalizeOpts) (*Column, error) {
	switch v := arg.(type) {
	case string:
		if opts.checkNames && !df.schema.Has(v) {
			return nil, &UnknownColumnError{Name: v}
		}
		return Col(v), nil

	case int:
		if !opts.allowOrdinal {
			return nil, typeMismatch("column", arg)
		}
		return df.ordinalColumn(v)

	case *Column:
		if v == nil {
			return nil, typeMismatch("column", arg)
		}
		return v, nil

	default:
		return nil, typeMismatch("column", arg)
	}
}

// ordinalColumn resolves a 1-based ordinal into a sort key: positive k
// sorts ascending on the k-th column, negative k sorts descending on the
// |k|-th, zero is invalid.
func (df *DataFrame) ordinalColumn(ordinal int) (*Column, error) {
	if ordinal == 0 {
		return nil, ErrInvalidOrdinal
	}
	pos := ordinal
	desc := false
	if pos < 0 {
		pos = -pos
		desc = true
	}
	if pos > len(df.schema) {
		return nil, fmt.Errorf("%w: ordinal %d exceeds %d columns", ErrInvalidArgument, ordinal, len(df.schema))
	}
	c := Col(df.schema[pos-1].Name)
	if desc {
		return c.Desc(), nil
	}
	return c, nil
}

// normalizeColumns flattens and normalizes a full argument list, in order.
func (df *DataFrame) normalizeColumns(args []any, opts normalizeOpts) ([]*Column, error) {
	flat, err := flattenArgs(args)
	if err != nil {
		return nil, err
	}
	cols := make([]*Column, 0, len(flat))
	for _, a := range flat {
		c, err := df.normalizeColumn(a, opts)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// encodeColumns encodes normalized expressions to engine SQL text.
func encodeColumns(cols []*Column) ([]string, error) {
	out := make([]string, len(cols))
	for i, c := range cols {
		encoded, err := c.encodeSQL()
		if err != nil {
			return nil, err
		}
		out[i] = encoded
	}
	return out, nil
}
