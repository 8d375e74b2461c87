package datadict

import (
	"context"
	"testing"

	"tada/internal/arrok"
	"tada/internal/expr"
)

func TestRollingApplySumOverWindow(t *testing.T) {
	dd, err := New([]*expr.Expr{col("x", []float64{1, 2, 3, 4, 5})}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	sumFn := func(sub *DataDict) ([]*expr.Expr, error) {
		x, err := sub.ArrOkColumn("x")
		if err != nil {
			return nil, err
		}
		s := arrok.Sum(x.F64Slice())
		return []*expr.Expr{expr.FromArrOk(arrok.FromF64(arrok.NewOwned([]float64{s})), "x_sum")}, nil
	}
	out, err := dd.RollingApply(context.Background(), 3, 1, sumFn, false)
	if err != nil {
		t.Fatalf("rolling apply: %v", err)
	}
	arr, err := out.ArrOkColumn("x_sum")
	if err != nil {
		t.Fatalf("x_sum column: %v", err)
	}
	got := arr.F64Slice()
	want := []float64{1, 3, 6, 9, 12}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("x_sum = %v, want %v", got, want)
		}
	}
}

func TestRollingApplyRespectsMinPeriods(t *testing.T) {
	dd, _ := New([]*expr.Expr{col("x", []float64{1, 2, 3})}, nil)
	sumFn := func(sub *DataDict) ([]*expr.Expr, error) {
		x, _ := sub.ArrOkColumn("x")
		s := arrok.Sum(x.F64Slice())
		return []*expr.Expr{expr.FromArrOk(arrok.FromF64(arrok.NewOwned([]float64{s})), "x_sum")}, nil
	}
	out, err := dd.RollingApply(context.Background(), 2, 2, sumFn, false)
	if err != nil {
		t.Fatalf("rolling apply: %v", err)
	}
	arr, err := out.ArrOkColumn("x_sum")
	if err != nil {
		t.Fatalf("x_sum column: %v", err)
	}
	got := arr.F64Slice()
	want := []float64{3, 5}
	if len(got) != len(want) {
		t.Fatalf("got = %v, want len %d (rows below min_periods should be skipped)", got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("x_sum = %v, want %v", got, want)
		}
	}
}
