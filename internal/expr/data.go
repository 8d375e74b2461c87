// Package expr implements tada's deferred-evaluation expression graph:
// a chain of closures recorded against a base value and folded on
// demand (spec §3.4, §4.3). The chain-of-closures shape mirrors the
// teacher's Series transformations (Filter/Map/Sort in
// internal/dataframe/series.go), generalized from eager one-shot calls
// to a recorded, replayable pipeline over a runtime-tagged array.
package expr

import (
	"tada/internal/arrok"
	tadaerr "tada/internal/errors"
)

// DataKind tags which variant of Data a value currently holds (spec
// §3.4: base is one of Arr/ArrVec/Expr/Context).
type DataKind uint8

const (
	KindArr DataKind = iota
	KindArrVec
	KindExpr
	KindContext
)

// Data is the tagged union an Expr's base (and every intermediate
// closure result) holds: a single array, a vector of arrays (used by
// groupby/rolling-by-startidx fan-out results), a nested Expr awaiting
// evaluation, or an unresolved column-name reference into a Context.
type Data struct {
	kind        DataKind
	arr         arrok.ArrOk
	arrVec      []arrok.ArrOk
	nested      *Expr
	contextName string
}

func DataFromArr(a arrok.ArrOk) Data { return Data{kind: KindArr, arr: a} }

func DataFromArrVec(v []arrok.ArrOk) Data { return Data{kind: KindArrVec, arrVec: v} }

func DataFromExpr(e *Expr) Data { return Data{kind: KindExpr, nested: e} }

func DataFromContext(name string) Data { return Data{kind: KindContext, contextName: name} }

func (d Data) Kind() DataKind { return d.kind }

// Arr returns the held array, panicking if Data does not currently
// hold KindArr — callers must check Kind() (or go through a closure
// that already guarantees the shape) before calling this, the same
// discipline ArrOk's typed accessors use.
func (d Data) Arr() arrok.ArrOk {
	if d.kind != KindArr {
		panic("expr: Data.Arr called on non-Arr variant")
	}
	return d.arr
}

func (d Data) ArrVec() []arrok.ArrOk {
	if d.kind != KindArrVec {
		panic("expr: Data.ArrVec called on non-ArrVec variant")
	}
	return d.arrVec
}

// resolve collapses Data down to a concrete Arr/ArrVec, recursively
// evaluating a nested Expr and looking up a Context leaf (spec
// §4.3.2 step 1, §4.3.4).
func resolve(d Data, ctx *Context) (Data, error) {
	switch d.kind {
	case KindArr, KindArrVec:
		return d, nil
	case KindExpr:
		out, _, err := d.nested.Eval(ctx)
		if err != nil {
			return Data{}, err
		}
		return out, nil
	case KindContext:
		if ctx == nil {
			return Data{}, tadaerr.New(tadaerr.MissingContext, "resolve", "column reference \""+d.contextName+"\" requires a context")
		}
		col, ok := ctx.Lookup(d.contextName)
		if !ok {
			return Data{}, tadaerr.New(tadaerr.MissingContext, "resolve", "unknown column \""+d.contextName+"\" in context")
		}
		cloned := col.CloneShell()
		out, _, err := cloned.Eval(ctx)
		if err != nil {
			return Data{}, err
		}
		return out, nil
	}
	panic("expr: unreachable Data kind")
}
