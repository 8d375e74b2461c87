package datadict

import (
	"context"
	"testing"

	"tada/internal/arrok"
	"tada/internal/expr"
)

func TestGroupbySplitsOnTwoKeys(t *testing.T) {
	k1 := expr.FromArrOk(arrok.FromF64(arrok.NewOwned([]float64{0, 1, 0, 1, 0})), "k1")
	k2 := expr.FromArrOk(arrok.FromString(arrok.NewOwned([]string{"x", "y", "x", "y", "x"})), "k2")
	v := col("v", []float64{10, 20, 30, 40, 50})
	dd, err := New([]*expr.Expr{k1, k2, v}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	groups, err := dd.Groupby([]string{"k1", "k2"})
	if err != nil {
		t.Fatalf("groupby: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	first, err := groups[0].ArrOkColumn("v")
	if err != nil {
		t.Fatalf("group 0 v column: %v", err)
	}
	want := []float64{10, 30, 50}
	got := first.F64Slice()
	if len(got) != len(want) {
		t.Fatalf("group 0 v = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("group 0 v = %v, want %v", got, want)
		}
	}
}

func TestGroupbyApplySumPerGroup(t *testing.T) {
	k1 := expr.FromArrOk(arrok.FromF64(arrok.NewOwned([]float64{0, 1, 0, 1, 0})), "k1")
	v := col("v", []float64{10, 20, 30, 40, 50})
	dd, err := New([]*expr.Expr{k1, v}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	sumFn := func(sub *DataDict) ([]*expr.Expr, error) {
		arr, err := sub.ArrOkColumn("v")
		if err != nil {
			return nil, err
		}
		s := arrok.Sum(arr.F64Slice())
		return []*expr.Expr{expr.FromArrOk(arrok.FromF64(arrok.NewOwned([]float64{s})), "v_sum")}, nil
	}
	out, err := dd.GroupbyApply(context.Background(), []string{"k1"}, sumFn, false)
	if err != nil {
		t.Fatalf("groupby apply: %v", err)
	}
	arr, err := out.ArrOkColumn("v_sum")
	if err != nil {
		t.Fatalf("v_sum column: %v", err)
	}
	got := arr.F64Slice()
	want := map[float64]bool{90: true, 60: true}
	if len(got) != 2 || !want[got[0]] || !want[got[1]] {
		t.Fatalf("v_sum = %v, want one of each of 90 and 60", got)
	}
}
