package dataframe

import "fmt"

// GroupedData is a set of grouping keys waiting for an aggregation. It is
// not a relation yet; calling one of its aggregation methods produces the
// aggregated DataFrame.
type GroupedData struct {
	df     *DataFrame
	groups []*Column
}

// GroupBy groups the DataFrame by the given columns for aggregation.
// With no columns the aggregation is global.
//
// Example:
//
//	g, _ := df.GroupBy("name")
//	counts, _ := g.Count()
func (df *DataFrame) GroupBy(cols ...any) (*GroupedData, error) {
	groups, err := df.normalizeColumns(cols, normalizeOpts{checkNames: true})
	if err != nil {
		return nil, err
	}
	return &GroupedData{df: df, groups: groups}, nil
}

func (g *GroupedData) aggregate(aggCols []*Column) (*DataFrame, error) {
	groupExprs, err := encodeColumns(g.groups)
	if err != nil {
		return nil, err
	}
	aggExprs, err := encodeColumns(aggCols)
	if err != nil {
		return nil, err
	}
	return g.df.wrap(g.df.rel.Aggregate(groupExprs, aggExprs))
}

// Count counts rows per group, producing the grouping columns plus a
// column named "count".
func (g *GroupedData) Count() (*DataFrame, error) {
	return g.aggregate([]*Column{Call("count").Alias("count")})
}

// Agg evaluates arbitrary aggregate expressions per group.
//
// Example:
//
//	g.Agg(dataframe.Call("sum", dataframe.Col("age")).Alias("sum(age)"))
func (g *GroupedData) Agg(exprs ...*Column) (*DataFrame, error) {
	if len(exprs) == 0 {
		return nil, fmt.Errorf("%w: agg requires at least one expression", ErrInvalidArgument)
	}
	for _, e := range exprs {
		if e == nil {
			return nil, typeMismatch("expr", e)
		}
	}
	return g.aggregate(exprs)
}

// fn applies one aggregate function to the named columns, or to every
// numeric non-grouping column when none are named. Output columns follow
// the fn(name) convention.
func (g *GroupedData) fn(name string, cols []string) (*DataFrame, error) {
	targets := cols
	if len(targets) == 0 {
		grouped := make(map[string]bool, len(g.groups))
		for _, c := range g.groups {
			if n, ok := c.outputName(); ok {
				grouped[n] = true
			}
		}
		for _, f := range g.df.schema {
			if f.Type.Numeric() && !grouped[f.Name] {
				targets = append(targets, f.Name)
			}
		}
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: no numeric columns to aggregate", ErrInvalidArgument)
	}

	aggs := make([]*Column, len(targets))
	for i, col := range targets {
		if !g.df.schema.Has(col) {
			return nil, &UnknownColumnError{Name: col}
		}
		aggs[i] = Call(name, Col(col)).Alias(name + "(" + col + ")")
	}
	return g.aggregate(aggs)
}

// Sum sums the given columns per group, or all numeric columns.
func (g *GroupedData) Sum(cols ...string) (*DataFrame, error) { return g.fn("sum", cols) }

// Avg averages the given columns per group, or all numeric columns.
func (g *GroupedData) Avg(cols ...string) (*DataFrame, error) { return g.fn("avg", cols) }

// Min takes per-group minima of the given columns, or all numeric columns.
func (g *GroupedData) Min(cols ...string) (*DataFrame, error) { return g.fn("min", cols) }

// Max takes per-group maxima of the given columns, or all numeric columns.
func (g *GroupedData) Max(cols ...string) (*DataFrame, error) { return g.fn("max", cols) }
