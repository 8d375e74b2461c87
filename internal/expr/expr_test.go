package expr

import (
	"math"
	"testing"

	"tada/internal/arrok"
	"tada/internal/rolling"
)

func f64Eq(a, b []float64) bool {
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

func TestChainFAppliesInOrder(t *testing.T) {
	e := FromArrOk(arrok.FromF64(arrok.NewOwned([]float64{1, 2, 3})), "x")
	e.ChainF(func(d Data) (Data, error) {
		a := d.Arr()
		f := a.F64Slice()
		out := make([]float64, len(f))
		for i, v := range f {
			out[i] = v * 2
		}
		return DataFromArr(arrok.FromF64(arrok.NewOwned(out))), nil
	})
	out, _, err := e.Eval(nil)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !f64Eq(out.Arr().F64Slice(), []float64{2, 4, 6}) {
		t.Fatalf("got %v", out.Arr().F64Slice())
	}
	if e.Step() != 0 {
		t.Fatalf("step after eval = %d, want 0", e.Step())
	}
}

func TestEvalIsIdempotent(t *testing.T) {
	e := FromArrOk(arrok.FromF64(arrok.NewOwned([]float64{1, 2})), "x")
	out1, _, err := e.Eval(nil)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	out2, _, err := e.Eval(nil)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !f64Eq(out1.Arr().F64Slice(), out2.Arr().F64Slice()) {
		t.Fatalf("second eval changed result")
	}
}

func TestColumnReferenceRequiresContext(t *testing.T) {
	e := FromColumn("missing")
	_, _, err := e.Eval(nil)
	if err == nil {
		t.Fatalf("expected MissingContext error")
	}
}

func TestColumnReferenceResolvesFromContext(t *testing.T) {
	col := FromArrOk(arrok.FromF64(arrok.NewOwned([]float64{7, 8, 9})), "a")
	ctx := NewContext(map[string]*Expr{"a": col})
	ref := FromColumn("a")
	out, _, err := ref.Eval(ctx)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !f64Eq(out.Arr().F64Slice(), []float64{7, 8, 9}) {
		t.Fatalf("got %v", out.Arr().F64Slice())
	}
}

func TestRollingMeanViaExpr(t *testing.T) {
	e := FromArrOk(arrok.FromF64(arrok.NewOwned([]float64{1, math.NaN(), 3, 4, math.NaN(), 6})), "x")
	e.RollingMean(rolling.Options{Window: 3, MinPeriods: 2})
	out, _, err := e.Eval(nil)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	// i=1's window {1, NaN} has valid count 1 < MinPeriods=2, so it's
	// NaN; see the note on rolling.TestRollingMeanScenario1.
	want := []float64{math.NaN(), math.NaN(), 2.0, 3.5, 3.5, 5.0}
	if !f64Eq(out.Arr().F64Slice(), want) {
		t.Fatalf("got %v, want %v", out.Arr().F64Slice(), want)
	}
}

func TestRollingRegXBetaViaExpr(t *testing.T) {
	const k, c = 2.0, 3.0
	b := []float64{1, 2, 3, 4, 5}
	a := make([]float64, len(b))
	for i, v := range b {
		a[i] = k*v + c
	}
	y := FromArrOk(arrok.FromF64(arrok.NewOwned(a)), "a")
	x := FromArrOk(arrok.FromF64(arrok.NewOwned(b)), "b")
	y.RollingRegXBeta(x, rolling.Options{Window: 3, MinPeriods: 2})
	out, _, err := y.Eval(nil)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	got := out.Arr().F64Slice()
	for i := 1; i < len(got); i++ {
		if !f64Eq(got[i:i+1], []float64{k}) {
			t.Fatalf("regx_beta[%d] = %v, want %v", i, got[i], k)
		}
	}
}

func TestCloneShellDoesNotAlias(t *testing.T) {
	base := FromArrOk(arrok.FromF64(arrok.NewOwned([]float64{1, 2, 3})), "x")
	base.ChainF(func(d Data) (Data, error) { return d, nil })
	clone := base.CloneShell()
	clone.ChainF(func(d Data) (Data, error) {
		return DataFromArr(arrok.FromF64(arrok.NewOwned([]float64{99}))), nil
	})
	if base.Step() == clone.Step() && base.Step() != 1 {
		t.Fatalf("unexpected step state")
	}
	if _, _, err := clone.Eval(nil); err != nil {
		t.Fatalf("clone eval: %v", err)
	}
	if base.Step() != 1 {
		t.Fatalf("original expr's pending chain mutated by clone's eval")
	}
}
