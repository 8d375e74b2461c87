package arrok

import (
	"math"
	"testing"

	"tada/internal/dtype"
)

func TestCastIdempotence(t *testing.T) {
	a := FromI32(NewOwned([]int32{1, 2, 3}))
	once, err := a.Cast(dtype.F64)
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	twice, err := once.Cast(dtype.F64)
	if err != nil {
		t.Fatalf("second cast: %v", err)
	}
	if twice.Dtype() != dtype.F64 {
		t.Fatalf("expected f64, got %s", twice.Dtype())
	}
	if !sliceEq(once.F64Slice(), twice.F64Slice()) {
		t.Fatalf("cast(cast(e)) should equal cast(e)")
	}
}

func TestSelectRoundTrip(t *testing.T) {
	a := FromF64(NewOwned([]float64{10, 20, 30, 40, 50}))
	perm := FromUSize(NewOwned([]int{3, 1, 4, 0, 2}))
	inv := FromUSize(NewOwned([]int{3, 1, 4, 0, 2})) // self-inverse for this permutation? compute properly below
	_ = inv

	permuted, err := a.Select(perm, 0, true)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	// compute the inverse permutation
	p := perm.usizeArr.Slice()
	invIdx := make([]int, len(p))
	for i, v := range p {
		invIdx[v] = i
	}
	invArr := FromUSize(NewOwned(invIdx))

	roundTripped, err := permuted.Select(invArr, 0, true)
	if err != nil {
		t.Fatalf("inverse select: %v", err)
	}
	if !sliceEq(a.F64Slice(), roundTripped.F64Slice()) {
		t.Fatalf("select(select(a,p), inverse(p)) != a: got %v want %v", roundTripped.F64Slice(), a.F64Slice())
	}
}

func TestSelectOptUSizePromotesToFloat(t *testing.T) {
	src := FromI32(NewOwned([]int32{10, 20, 30}))
	idx := FromOptUSize(NewOwned([]OptUSize{SomeUSize(0), NoneUSize(), SomeUSize(2)}))

	out, err := src.Select(idx, 0, true)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if out.Dtype() != dtype.F64 {
		t.Fatalf("expected f64 output, got %s", out.Dtype())
	}
	got := out.F64Slice()
	if got[0] != 10 || !math.IsNaN(got[1]) || got[2] != 30 {
		t.Fatalf("unexpected output: %v", got)
	}
}

func TestFilterKeepsMaskedPositions(t *testing.T) {
	a := FromF64(NewOwned([]float64{1, 2, 3, 4}))
	mask := []bool{true, false, true, false}
	out, err := a.Filter(mask, 0)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if !sliceEq(out.F64Slice(), []float64{1, 3}) {
		t.Fatalf("got %v", out.F64Slice())
	}
}

func TestConcat(t *testing.T) {
	a := FromF64(NewOwned([]float64{1, 2}))
	b := FromF64(NewOwned([]float64{3, 4}))
	out, err := SameDtypeConcat1D([]ArrOk{a, b})
	if err != nil {
		t.Fatalf("concat: %v", err)
	}
	if !sliceEq(out.F64Slice(), []float64{1, 2, 3, 4}) {
		t.Fatalf("got %v", out.F64Slice())
	}
}

func TestConcatRejectsMismatchedDtype(t *testing.T) {
	a := FromF64(NewOwned([]float64{1}))
	b := FromI32(NewOwned([]int32{1}))
	if _, err := SameDtypeConcat1D([]ArrOk{a, b}); err == nil {
		t.Fatalf("expected dtype mismatch error")
	}
}

func TestDropNADropsMissingRows(t *testing.T) {
	a := FromF64(NewOwned([]float64{1, math.NaN(), 3, math.NaN()}))
	out, err := a.DropNA()
	if err != nil {
		t.Fatalf("dropna: %v", err)
	}
	if !sliceEq(out.F64Slice(), []float64{1, 3}) {
		t.Fatalf("got %v", out.F64Slice())
	}
}

func TestDropNAMaskAnyVsAll(t *testing.T) {
	a := FromF64(NewOwned([]float64{1, math.NaN(), math.NaN()}))
	b := FromF64(NewOwned([]float64{math.NaN(), math.NaN(), 3}))

	any, err := DropNAMask([]ArrOk{a, b}, DropAny)
	if err != nil {
		t.Fatalf("dropna any: %v", err)
	}
	if any[0] != false || any[1] != false || any[2] != false {
		t.Fatalf("unexpected DropAny mask: %v", any)
	}

	all, err := DropNAMask([]ArrOk{a, b}, DropAll)
	if err != nil {
		t.Fatalf("dropna all: %v", err)
	}
	if all[0] != true || all[1] != false || all[2] != true {
		t.Fatalf("unexpected DropAll mask: %v", all)
	}
}

func sliceEq(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.IsNaN(a[i]) && math.IsNaN(b[i]) {
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
