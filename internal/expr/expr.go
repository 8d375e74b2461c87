package expr

import (
	"tada/internal/arrok"
	tadaerr "tada/internal/errors"
)

// FromArrOk builds a leaf Expr wrapping a concrete array.
func FromArrOk(a arrok.ArrOk, name string) *Expr {
	return newExpr(DataFromArr(a), name)
}

// FromArrVec builds a leaf Expr wrapping a vector of arrays (the shape
// groupby/rolling-by-startidx fan-out produces before concatenation).
func FromArrVec(v []arrok.ArrOk, name string) *Expr {
	return newExpr(DataFromArrVec(v), name)
}

// Closure is one link in an Expr's deferred chain: it consumes the
// current Data and Context and produces the next Data and Context
// (spec §3.4, §4.3.1). chain_f closures (built via ChainF) never touch
// the context; chain_f_ctx closures (built via ChainFCtx) may read or
// replace it. Both are represented as this one function type so Eval's
// fold loop doesn't need two code paths.
type Closure func(Data, *Context) (Data, *Context, error)

// Expr is tada's deferred-evaluation node (spec §3.4): a base value
// plus a queue of not-yet-applied closures. Evaluating the chain is
// the only way its nodes run, and each closure is meant to run exactly
// once — Eval clears nodes after folding them, so a second Eval on the
// same Expr is a no-op per spec §4.3.2's idempotence requirement.
type Expr struct {
	base  Data
	name  *string
	nodes []Closure
}

// newExpr is the common constructor every From* helper below funnels
// through.
func newExpr(base Data, name string) *Expr {
	e := &Expr{base: base}
	if name != "" {
		e.name = &name
	}
	return e
}

// FromData builds a leaf Expr directly from a Data value (used for
// Arr, ArrVec and nested-Expr bases).
func FromData(d Data, name string) *Expr {
	return newExpr(d, name)
}

// FromColumn builds a leaf Expr that resolves to whatever Expr is
// bound to columnName in the Context supplied at evaluation time
// (spec §3.4's Data::Context(name) variant, §4.3.4).
func FromColumn(columnName string) *Expr {
	return newExpr(DataFromContext(columnName), columnName)
}

// Name returns the expression's current name, or "" if unnamed.
func (e *Expr) Name() string {
	if e.name == nil {
		return ""
	}
	return *e.name
}

// SetName renames the expression in place (spec §3.4: "name survives
// chain composition unless an operation explicitly renames").
func (e *Expr) SetName(name string) { e.name = &name }

// Step reports how many unevaluated closures remain (spec §3.4).
func (e *Expr) Step() int { return len(e.nodes) }

// StepAcc adds the accumulated step of a nested-Expr base, so a chain
// built on top of another not-yet-evaluated Expr reports its true
// total pending work (spec §3.4).
func (e *Expr) StepAcc() int {
	acc := len(e.nodes)
	if e.base.kind == KindExpr {
		acc += e.base.nested.StepAcc()
	}
	return acc
}

// ChainF appends a context-blind closure (spec §4.3.1 chain_f) and
// returns the same Expr for fluent composition.
func (e *Expr) ChainF(f func(Data) (Data, error)) *Expr {
	e.nodes = append(e.nodes, func(d Data, ctx *Context) (Data, *Context, error) {
		out, err := f(d)
		return out, ctx, err
	})
	return e
}

// ChainFCtx appends a context-aware closure (spec §4.3.1 chain_f_ctx).
func (e *Expr) ChainFCtx(f func(Data, *Context) (Data, *Context, error)) *Expr {
	e.nodes = append(e.nodes, f)
	return e
}

// Rename appends a closure that renames the expression once the chain
// reaches it, without altering the evaluated data.
func (e *Expr) Rename(newName string) *Expr {
	e.nodes = append(e.nodes, func(d Data, ctx *Context) (Data, *Context, error) {
		e.name = &newName
		return d, ctx, nil
	})
	return e
}

// Eval folds the closure chain over base and ctx (spec §4.3.2):
//  1. If base is itself a pending Expr, evaluate it first, in place.
//  2. acc ← (take(base), ctx)
//  3. Fold every closure over acc in order, aborting on the first error.
//  4. Store the result back into base and clear nodes.
//
// Eval is idempotent: calling it again when Step()==0 and base is
// already Arr/ArrVec returns the stored base unchanged.
func (e *Expr) Eval(ctx *Context) (Data, *Context, error) {
	if e.base.kind == KindExpr {
		out, _, err := e.base.nested.Eval(ctx)
		if err != nil {
			return Data{}, ctx, err
		}
		e.base = out
	} else if e.base.kind == KindContext {
		resolved, err := resolve(e.base, ctx)
		if err != nil {
			return Data{}, ctx, err
		}
		e.base = resolved
	}

	acc := e.base
	accCtx := ctx
	for _, node := range e.nodes {
		var err error
		acc, accCtx, err = node(acc, accCtx)
		if err != nil {
			return Data{}, ctx, err
		}
	}
	e.base = acc
	e.nodes = nil

	if e.base.kind != KindArr && e.base.kind != KindArrVec {
		return Data{}, ctx, tadaerr.New(tadaerr.MissingContext, "eval", "expression did not resolve to a concrete array")
	}
	return e.base, ctx, nil
}

// EvalInplace evaluates the expression and resets its step accounting
// to 0 even if an already-cleared chain is re-run (spec §8 "Step
// monotonicity": "eval_inplace sets it to 0").
func (e *Expr) EvalInplace(ctx *Context) error {
	_, _, err := e.Eval(ctx)
	return err
}

// ViewArr returns the expression's current array without evaluating
// any pending closures; it requires Step()==0 (already evaluated), or
// a context capable of resolving a Context leaf (spec §3.4's lifecycle
// note: "view_arr requires step == 0, or a Context supplied").
func (e *Expr) ViewArr(ctx *Context) (Data, error) {
	if e.Step() != 0 {
		return Data{}, tadaerr.New(tadaerr.MissingContext, "view_arr", "expression has pending steps; call Eval first")
	}
	if e.base.kind == KindContext {
		return resolve(e.base, ctx)
	}
	if e.base.kind == KindExpr {
		return Data{}, tadaerr.New(tadaerr.MissingContext, "view_arr", "nested expression not yet evaluated")
	}
	return e.base, nil
}

// CloneShell duplicates the nodes queue and the base's structural
// shell without deep-copying an Arr's underlying storage (spec
// §4.3.3's "context-clone" semantics): the rolling-by-startidx and
// groupby_apply drivers use this to run one independent evaluation per
// window/group without aliasing each other's chain state, while still
// sharing the same backing array views.
func (e *Expr) CloneShell() *Expr {
	clone := &Expr{
		base: e.base,
		name: e.name,
	}
	if len(e.nodes) > 0 {
		clone.nodes = make([]Closure, len(e.nodes))
		copy(clone.nodes, e.nodes)
	}
	if e.base.kind == KindExpr {
		clone.base = DataFromExpr(e.base.nested.CloneShell())
	}
	return clone
}
