package dataframe

import "fmt"

// joinTypeAliases maps historical join-kind spellings onto their canonical
// kind. Keys are matched case-sensitively, as given by the caller.
var joinTypeAliases = map[string]string{
	"full":        "outer",
	"fullouter":   "outer",
	"full_outer":  "outer",
	"leftouter":   "left",
	"left_outer":  "left",
	"rightouter":  "right",
	"right_outer": "right",
	"leftsemi":    "semi",
	"left_semi":   "semi",
	"leftanti":    "anti",
	"left_anti":   "anti",
}

// resolveJoinType maps a join-kind spelling to its canonical kind: one of
// inner, outer, left, right, semi, anti. Inputs matching neither a
// canonical kind nor an alias pass through unchanged; the engine is the
// final authority and may reject them itself.
func resolveJoinType(how string) string {
	switch how {
	case "inner", "outer", "left", "right", "semi", "anti":
		return how
	}
	if canonical, ok := joinTypeAliases[how]; ok {
		return canonical
	}
	return how
}

// Join joins with another DataFrame.
//
// The on argument decides the join's condition shape:
//   - nil with an empty how: the engine's default join;
//   - a string or []string of shared column names: an equi-join on those
//     columns (existence on both sides is checked by the engine);
//   - a *Column or []*Column: the expressions are AND-combined into one
//     boolean condition;
//   - a mix of names and expressions fails with ErrInvalidJoinCondition.
//
// how accepts the canonical kinds inner, outer, left, right, semi, anti,
// their historical aliases (fullouter, left_outer, leftsemi, ...), and any
// other spelling the engine itself understands. Empty how means inner when
// a condition is given.
//
// Example:
//
//	df.Join(df2, "name", "")                            // equi-join on name
//	df.Join(df2, []string{"name", "age"}, "left")       // multi-column equi-join
//	cond := dataframe.Col("a.id").Eq(dataframe.Col("b.id"))
//	df.Join(df2, cond, "outer")                         // predicate join
func (df *DataFrame) Join(other *DataFrame, on any, how string) (*DataFrame, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: join requires another DataFrame", ErrInvalidArgument)
	}

	if on == nil {
		if how == "" {
			return df.wrap(df.rel.Join(other.rel, "", ""))
		}
		return df.wrap(df.rel.Join(other.rel, "TRUE", resolveJoinType(how)))
	}

	names, exprs, err := splitJoinCondition(on)
	if err != nil {
		return nil, err
	}
	kind := resolveJoinType(how)
	if how == "" {
		kind = "inner"
	}

	if len(names) > 0 {
		return df.wrap(df.rel.JoinUsing(other.rel, names, kind))
	}

	cond := exprs[0]
	for _, e := range exprs[1:] {
		cond = cond.And(e)
	}
	encoded, err := cond.encodeSQL()
	if err != nil {
		return nil, err
	}
	return df.wrap(df.rel.Join(other.rel, encoded, kind))
}

// splitJoinCondition classifies the on argument into either a list of
// plain column names or a list of expressions. Mixing both kinds in one
// call is not supported.
func splitJoinCondition(on any) (names []string, exprs []*Column, err error) {
	var items []any
	switch v := on.(type) {
	case string:
		items = []any{v}
	case *Column:
		items = []any{v}
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	case []*Column:
		for _, c := range v {
			items = append(items, c)
		}
	case []any:
		items = v
	default:
		return nil, nil, fmt.Errorf("%w: on must be a column name, an expression, or a list of either, got %T",
			ErrInvalidJoinCondition, on)
	}
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("%w: on cannot be empty", ErrInvalidJoinCondition)
	}

	for _, item := range items {
		switch v := item.(type) {
		case string:
			names = append(names, v)
		case *Column:
			if v == nil {
				return nil, nil, fmt.Errorf("%w: nil expression", ErrInvalidJoinCondition)
			}
			exprs = append(exprs, v)
		default:
			return nil, nil, fmt.Errorf("%w: unsupported condition element %T", ErrInvalidJoinCondition, item)
		}
	}
	if len(names) > 0 && len(exprs) > 0 {
		return nil, nil, fmt.Errorf("%w: cannot mix column names and expressions", ErrInvalidJoinCondition)
	}
	return names, exprs, nil
}

// CrossJoin returns the cartesian product with another DataFrame.
//
// Example:
//
//	df.CrossJoin(df2)
func (df *DataFrame) CrossJoin(other *DataFrame) (*DataFrame, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: cross join requires another DataFrame", ErrInvalidArgument)
	}
	return df.wrap(df.rel.Cross(other.rel))
}
