package dataframe

import "testing"

func TestRow(t *testing.T) {
	r := NewRow([]string{"age", "name"}, []any{5, "Bob"})

	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}
	if v := r.Value(0); v != 5 {
		t.Errorf("Value(0) = %v, want 5", v)
	}

	v, ok := r.Get("NAME")
	if !ok || v != "Bob" {
		t.Errorf("Get(NAME) = (%v, %v), want Bob", v, ok)
	}
	if _, ok := r.Get("salary"); ok {
		t.Error("Get(salary) should not resolve")
	}

	if got, want := r.String(), "Row(age=5, name=Bob)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	fields := r.Fields()
	values := r.Values()
	if len(fields) != 2 || len(values) != 2 {
		t.Fatalf("unexpected fields/values: %v / %v", fields, values)
	}
}
