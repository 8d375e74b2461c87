package datadict

import (
	"context"
	"testing"

	"tada/internal/arrok"
	"tada/internal/expr"
)

func col(name string, vals []float64) *expr.Expr {
	return expr.FromArrOk(arrok.FromF64(arrok.NewOwned(vals)), name)
}

func TestNewAssignsPositionalAndFallbackNames(t *testing.T) {
	dd, err := New([]*expr.Expr{col("a", []float64{1, 2}), col("", []float64{3, 4})}, []string{"a"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	got := dd.Columns()
	want := map[string]bool{"a": true, "column_0": true}
	if len(got) != 2 || !want[got[0]] || !want[got[1]] {
		t.Fatalf("columns = %v", got)
	}
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := New([]*expr.Expr{col("a", []float64{1}), col("a", []float64{2})}, nil)
	if err == nil {
		t.Fatalf("expected name collision error")
	}
}

func TestInsertGetRoundTrip(t *testing.T) {
	dd, err := New([]*expr.Expr{col("a", []float64{1, 2, 3})}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	e := col("b", []float64{4, 5, 6})
	if err := dd.Insert(e); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := dd.Get(Name("b"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got[0] != e {
		t.Fatalf("get(b) did not round-trip the inserted expression")
	}
}

func TestInsertReplacesExistingColumn(t *testing.T) {
	dd, _ := New([]*expr.Expr{col("a", []float64{1, 2, 3})}, nil)
	replacement := col("a", []float64{9, 9, 9})
	if err := dd.Insert(replacement); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(dd.Columns()) != 1 {
		t.Fatalf("insert of existing name should replace, not append: columns = %v", dd.Columns())
	}
}

func TestDropRemovesAndReindexes(t *testing.T) {
	dd, _ := New([]*expr.Expr{col("a", []float64{1}), col("b", []float64{2}), col("c", []float64{3})}, nil)
	removed, err := dd.Drop(Name("b"))
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if len(removed) != 1 || removed[0] != "b" {
		t.Fatalf("removed = %v", removed)
	}
	cols := dd.Columns()
	if len(cols) != 2 {
		t.Fatalf("columns after drop = %v", cols)
	}
	if _, err := dd.Get(Name("b")); err == nil {
		t.Fatalf("expected b to be gone")
	}
}

func TestSetBroadcastsSingleValue(t *testing.T) {
	dd, _ := New([]*expr.Expr{col("a", []float64{1}), col("b", []float64{2})}, nil)
	repl := col("", []float64{0})
	if err := dd.Set(All(), []*expr.Expr{repl}); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _ := dd.Get(All())
	if got[0].Name() != "a" || got[1].Name() != "b" {
		t.Fatalf("set should preserve each target's existing name, got %q/%q", got[0].Name(), got[1].Name())
	}
}

func TestSetRejectsMismatchedCounts(t *testing.T) {
	dd, _ := New([]*expr.Expr{col("a", []float64{1}), col("b", []float64{2}), col("c", []float64{3})}, nil)
	err := dd.Set(All(), []*expr.Expr{col("", []float64{0}), col("", []float64{0})})
	if err == nil {
		t.Fatalf("expected shape mismatch error for 2 values into 3 columns")
	}
}

func TestEvalResolvesColumnReferenceAndUpdatesNameOnRename(t *testing.T) {
	a := col("a", []float64{1, 2, 3})
	b := expr.FromColumn("a")
	b.ChainF(func(d expr.Data) (expr.Data, error) {
		f := d.Arr().F64Slice()
		out := make([]float64, len(f))
		for i, v := range f {
			out[i] = v * 10
		}
		return expr.DataFromArr(arrok.FromF64(arrok.NewOwned(out))), nil
	})
	b.Rename("b_scaled")
	dd, err := New([]*expr.Expr{a, b}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := dd.Eval(context.Background(), All(), true); err != nil {
		t.Fatalf("eval: %v", err)
	}
	arr, err := dd.ArrOkColumn("b_scaled")
	if err != nil {
		t.Fatalf("column b_scaled missing after rename: %v", err)
	}
	want := []float64{10, 20, 30}
	got := arr.F64Slice()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("b_scaled = %v, want %v", got, want)
		}
	}
}

func TestLenInfersFromFirstEvaluatedColumn(t *testing.T) {
	dd, _ := New([]*expr.Expr{col("a", []float64{1, 2, 3, 4})}, nil)
	n, err := dd.Len()
	if err != nil || n != 4 {
		t.Fatalf("len = %d, %v, want 4", n, err)
	}
}
