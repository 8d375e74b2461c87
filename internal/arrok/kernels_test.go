package arrok

import (
	"math"
	"testing"
)

func TestMeanIgnoresNaN(t *testing.T) {
	got := Mean([]float64{1, math.NaN(), 3})
	if got != 2 {
		t.Fatalf("got %v, want 2", got)
	}
}

func TestQuantileMedian(t *testing.T) {
	x := []float64{3, 1, 2, 4}
	if got := Median(x); got != 2.5 {
		t.Fatalf("median got %v, want 2.5", got)
	}
}

func TestArgsortPutsNaNLast(t *testing.T) {
	x := []float64{3, math.NaN(), 1, 2}
	idx := Argsort(x)
	want := []int{2, 3, 0, 1}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("argsort = %v, want %v", idx, want)
		}
	}
}

func TestRankAveragesTies(t *testing.T) {
	x := []float64{1, 2, 2, 3}
	got := Rank(x)
	want := []float64{1, 2.5, 2.5, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rank = %v, want %v", got, want)
		}
	}
}

func TestClipBounds(t *testing.T) {
	got := Clip([]float64{-5, 0, 5, 10}, 0, 5)
	want := []float64{0, 0, 5, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("clip = %v, want %v", got, want)
		}
	}
}

func TestFillNAForwardCarries(t *testing.T) {
	got := FillNAForward([]float64{math.NaN(), 1, math.NaN(), math.NaN(), 2})
	if !math.IsNaN(got[0]) || got[1] != 1 || got[2] != 1 || got[3] != 1 || got[4] != 2 {
		t.Fatalf("got %v", got)
	}
}

func TestDiffBasic(t *testing.T) {
	got := Diff([]float64{1, 3, 6, 10}, 1)
	want := []float64{math.NaN(), 2, 3, 4}
	if !sliceEq(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestStackBuildsRowMajor(t *testing.T) {
	a := FromF64(NewOwned([]float64{1, 2}))
	b := FromF64(NewOwned([]float64{3, 4}))
	out, err := Stack([]ArrOk{a, b})
	if err != nil {
		t.Fatalf("stack: %v", err)
	}
	if !sliceEq(out.f64Arr.Slice(), []float64{1, 2, 3, 4}) {
		t.Fatalf("got %v", out.f64Arr.Slice())
	}
	if out.Shape()[0] != 2 || out.Shape()[1] != 2 {
		t.Fatalf("unexpected shape %v", out.Shape())
	}
}
