package dataframe

import (
	"errors"
	"testing"
)

func TestWithColumn(t *testing.T) {
	df := peopleFrame(t, newTestEngine(t))

	t.Run("appends new column", func(t *testing.T) {
		out, err := df.WithColumn("age2", Col("age").Add(Lit(2)))
		if err != nil {
			t.Fatalf("withColumn failed: %v", err)
		}
		cols := out.Columns()
		if len(cols) != 3 || cols[2] != "age2" {
			t.Fatalf("unexpected columns: %v", cols)
		}
		assertRows(t, out, []string{
			"Row(age=2, name=Alice, age2=4)",
			"Row(age=5, name=Bob, age2=7)",
			"Row(age=7, name=Bob, age2=9)",
		})
	})

	t.Run("replaces in place", func(t *testing.T) {
		out, err := df.WithColumn("age", Col("age").Mul(Lit(10)))
		if err != nil {
			t.Fatalf("withColumn failed: %v", err)
		}
		cols := out.Columns()
		if len(cols) != 2 || cols[0] != "age" {
			t.Fatalf("unexpected columns: %v", cols)
		}
		assertRows(t, out, []string{
			"Row(age=20, name=Alice)",
			"Row(age=50, name=Bob)",
			"Row(age=70, name=Bob)",
		})
	})

	t.Run("replace matches case-insensitively, requested spelling wins", func(t *testing.T) {
		out, err := df.WithColumn("AGE", Col("age").Add(Lit(1)))
		if err != nil {
			t.Fatalf("withColumn failed: %v", err)
		}
		cols := out.Columns()
		if len(cols) != 2 || cols[0] != "AGE" {
			t.Fatalf("unexpected columns: %v", cols)
		}
	})

	t.Run("nil expression", func(t *testing.T) {
		if _, err := df.WithColumn("x", nil); !errors.Is(err, ErrTypeMismatch) {
			t.Fatalf("error = %v, want ErrTypeMismatch", err)
		}
	})
}

func TestWithColumns(t *testing.T) {
	df := peopleFrame(t, newTestEngine(t))

	t.Run("appends in request order", func(t *testing.T) {
		out, err := df.WithColumns(
			ColumnSpec{Name: "age2", Col: Col("age").Add(Lit(2))},
			ColumnSpec{Name: "age3", Col: Col("age").Add(Lit(3))},
		)
		if err != nil {
			t.Fatalf("withColumns failed: %v", err)
		}
		cols := out.Columns()
		want := []string{"age", "name", "age2", "age3"}
		for i := range want {
			if cols[i] != want[i] {
				t.Fatalf("columns = %v, want %v", cols, want)
			}
		}
	})

	t.Run("mixes replace and append", func(t *testing.T) {
		out, err := df.WithColumns(
			ColumnSpec{Name: "total", Col: Col("age").Mul(Lit(2))},
			ColumnSpec{Name: "name", Col: Call("upper", Col("name"))},
		)
		if err != nil {
			t.Fatalf("withColumns failed: %v", err)
		}
		cols := out.Columns()
		want := []string{"age", "name", "total"}
		for i := range want {
			if cols[i] != want[i] {
				t.Fatalf("columns = %v, want %v", cols, want)
			}
		}
		assertRows(t, out, []string{
			"Row(age=2, name=ALICE, total=4)",
			"Row(age=5, name=BOB, total=10)",
			"Row(age=7, name=BOB, total=14)",
		})
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := df.WithColumns(); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("error = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("nil spec expression", func(t *testing.T) {
		_, err := df.WithColumns(ColumnSpec{Name: "x"})
		if !errors.Is(err, ErrTypeMismatch) {
			t.Fatalf("error = %v, want ErrTypeMismatch", err)
		}
	})
}

func TestWithColumnRenamed(t *testing.T) {
	df := peopleFrame(t, newTestEngine(t))

	t.Run("renames existing", func(t *testing.T) {
		out, err := df.WithColumnRenamed("age", "years")
		if err != nil {
			t.Fatalf("rename failed: %v", err)
		}
		cols := out.Columns()
		if cols[0] != "years" || cols[1] != "name" {
			t.Fatalf("unexpected columns: %v", cols)
		}
	})

	t.Run("unknown source fails loudly", func(t *testing.T) {
		_, err := df.WithColumnRenamed("salary", "pay")
		if !errors.Is(err, ErrUnknownColumn) {
			t.Fatalf("error = %v, want ErrUnknownColumn", err)
		}
	})
}

func TestWithColumnsRenamed(t *testing.T) {
	df := peopleFrame(t, newTestEngine(t))

	t.Run("renames multiple", func(t *testing.T) {
		out, err := df.WithColumnsRenamed(map[string]string{"age": "years", "name": "who"})
		if err != nil {
			t.Fatalf("rename failed: %v", err)
		}
		cols := out.Columns()
		if cols[0] != "years" || cols[1] != "who" {
			t.Fatalf("unexpected columns: %v", cols)
		}
	})

	t.Run("unknown sources silently skipped", func(t *testing.T) {
		out, err := df.WithColumnsRenamed(map[string]string{"salary": "pay", "age": "years"})
		if err != nil {
			t.Fatalf("rename failed: %v", err)
		}
		cols := out.Columns()
		if cols[0] != "years" || cols[1] != "name" {
			t.Fatalf("unexpected columns: %v", cols)
		}
	})

	t.Run("all unknown is a no-op projection", func(t *testing.T) {
		out, err := df.WithColumnsRenamed(map[string]string{"salary": "pay"})
		if err != nil {
			t.Fatalf("rename failed: %v", err)
		}
		cols := out.Columns()
		if cols[0] != "age" || cols[1] != "name" {
			t.Fatalf("unexpected columns: %v", cols)
		}
	})

	t.Run("empty map", func(t *testing.T) {
		_, err := df.WithColumnsRenamed(nil)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("error = %v, want ErrInvalidArgument", err)
		}
	})
}

func TestToDF(t *testing.T) {
	df := peopleFrame(t, newTestEngine(t))

	t.Run("renames positionally", func(t *testing.T) {
		out, err := df.ToDF("f1", "f2")
		if err != nil {
			t.Fatalf("toDF failed: %v", err)
		}
		cols := out.Columns()
		if cols[0] != "f1" || cols[1] != "f2" {
			t.Fatalf("unexpected columns: %v", cols)
		}
		assertRows(t, out, []string{
			"Row(f1=2, f2=Alice)",
			"Row(f1=5, f2=Bob)",
			"Row(f1=7, f2=Bob)",
		})
	})

	t.Run("arity mismatch", func(t *testing.T) {
		_, err := df.ToDF("only_one")
		if !errors.Is(err, ErrColumnCountMismatch) {
			t.Fatalf("error = %v, want ErrColumnCountMismatch", err)
		}
	})
}

func TestUnionByNamePlan(t *testing.T) {
	left := Schema{
		{Name: "id", Type: KindInteger},
		{Name: "name", Type: KindString},
	}
	right := Schema{
		{Name: "name", Type: KindString},
		{Name: "city", Type: KindString},
	}

	t.Run("strict rejects differing sets", func(t *testing.T) {
		_, _, err := unionByNamePlan(left, right, false)
		if !errors.Is(err, ErrSchemaMismatch) {
			t.Fatalf("error = %v, want ErrSchemaMismatch", err)
		}
	})

	t.Run("strict aligns right to left order", func(t *testing.T) {
		shuffled := Schema{right[0], left[0]} // name, id
		leftCols, rightCols, err := unionByNamePlan(left, shuffled, false)
		if err != nil {
			t.Fatalf("plan failed: %v", err)
		}
		if len(leftCols) != 2 || len(rightCols) != 2 {
			t.Fatalf("unexpected plan lengths: %d, %d", len(leftCols), len(rightCols))
		}
		for i, want := range []string{"id", "name"} {
			if n, _ := leftCols[i].outputName(); n != want {
				t.Errorf("left[%d] = %q, want %q", i, n, want)
			}
			if n, _ := rightCols[i].outputName(); n != want {
				t.Errorf("right[%d] = %q, want %q", i, n, want)
			}
		}
	})

	t.Run("padded appends right-only columns with NULL filler", func(t *testing.T) {
		leftCols, rightCols, err := unionByNamePlan(left, right, true)
		if err != nil {
			t.Fatalf("plan failed: %v", err)
		}
		wantNames := []string{"id", "name", "city"}
		if len(leftCols) != 3 || len(rightCols) != 3 {
			t.Fatalf("unexpected plan lengths: %d, %d", len(leftCols), len(rightCols))
		}
		for i, want := range wantNames {
			if n, _ := leftCols[i].outputName(); n != want {
				t.Errorf("left[%d] = %q, want %q", i, n, want)
			}
			if n, _ := rightCols[i].outputName(); n != want {
				t.Errorf("right[%d] = %q, want %q", i, n, want)
			}
		}

		// Left lacks city, right lacks id: both get a NULL literal.
		if leftCols[2].kind != exprAlias || leftCols[2].left.kind != exprLiteral {
			t.Error("expected NULL filler for left city")
		}
		if rightCols[0].kind != exprAlias || rightCols[0].left.kind != exprLiteral {
			t.Error("expected NULL filler for right id")
		}
	})
}
