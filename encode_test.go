package dataframe

import (
	"errors"
	"testing"
	"time"
)

func TestEncodeSQL(t *testing.T) {
	tests := []struct {
		name string
		col  *Column
		want string
	}{
		{"column", Col("age"), `"age"`},
		{"qualified column", Col("t1.age"), `"t1"."age"`},
		{"quoted quote", Col(`we"ird`), `"we""ird"`},
		{"int literal", Lit(42), "42"},
		{"string literal", Lit("Bob"), "'Bob'"},
		{"string literal escaping", Lit("O'Brien"), "'O''Brien'"},
		{"bool literal", Lit(true), "TRUE"},
		{"null literal", Lit(nil), "NULL"},
		{"float literal", Lit(1.5), "1.5"},
		{"blob literal", Lit([]byte{0xde, 0xad}), `'\xde\xad'::BLOB`},
		{"comparison", Col("age").Gt(Lit(3)), `("age" > 3)`},
		{"conjunction", Col("a").Eq(Lit(1)).And(Col("b").Neq(Lit(2))), `(("a" = 1) AND ("b" <> 2))`},
		{"arithmetic nesting", Col("a").Add(Lit(1)).Mul(Lit(2)), `(("a" + 1) * 2)`},
		{"modulo", Col("a").Mod(Lit(2)), `("a" % 2)`},
		{"not", Col("ok").Not(), `NOT ("ok")`},
		{"is null", Col("a").IsNull(), `("a" IS NULL)`},
		{"is not null", Col("a").IsNotNull(), `("a" IS NOT NULL)`},
		{"alias", Col("age").Add(Lit(1)).Alias("age1"), `("age" + 1) AS "age1"`},
		{"cast", Col("age").Cast("VARCHAR"), `CAST("age" AS VARCHAR)`},
		{"sort asc", Col("age").Asc(), `"age" ASC`},
		{"sort desc", Col("age").Desc(), `"age" DESC`},
		{"star", Star(), "*"},
		{"star exclude", StarExclude("a", "b"), `* EXCLUDE ("a", "b")`},
		{"function", Call("upper", Col("name")), `upper("name")`},
		{"zero-arg function", Call("count"), "count()"},
		{"nested function", Call("coalesce", Col("a"), Lit(0)), `coalesce("a", 0)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.col.encodeSQL()
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("encoded %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeTimeLiteral(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 45, 123456000, time.UTC)
	got, err := Lit(ts).encodeSQL()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	want := "TIMESTAMP '2024-03-01 12:30:45.123456'"
	if got != want {
		t.Errorf("encoded %q, want %q", got, want)
	}
}

func TestEncodeUnsupportedLiteral(t *testing.T) {
	_, err := Lit(struct{}{}).encodeSQL()
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("error = %v, want ErrTypeMismatch", err)
	}

	// The failure surfaces through any enclosing expression.
	_, err = Col("a").Eq(Lit(struct{}{})).encodeSQL()
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("error = %v, want ErrTypeMismatch", err)
	}
}

func TestColSplitsQualifier(t *testing.T) {
	tests := []struct {
		in    string
		table string
		name  string
	}{
		{"age", "", "age"},
		{"t1.age", "t1", "age"},
		{".age", "", ".age"},  // no qualifier part
		{"age.", "", "age."},  // no name part
		{"a.b.c", "a", "b.c"}, // split at the first dot only
	}
	for _, tt := range tests {
		c := Col(tt.in)
		if c.table != tt.table || c.name != tt.name {
			t.Errorf("Col(%q) = {table: %q, name: %q}, want {%q, %q}",
				tt.in, c.table, c.name, tt.table, tt.name)
		}
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		col  *Column
		want string
		ok   bool
	}{
		{Col("age"), "age", true},
		{Col("age").Alias("a"), "a", true},
		{Col("age").Desc(), "age", true},
		{Col("age").Cast("VARCHAR"), "age", true},
		{Col("age").Cast("VARCHAR").Alias("s"), "s", true},
		{Lit(1), "", false},
		{Col("a").Add(Lit(1)), "", false},
	}
	for _, tt := range tests {
		got, ok := tt.col.outputName()
		if got != tt.want || ok != tt.ok {
			t.Errorf("outputName = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
		}
	}
}
