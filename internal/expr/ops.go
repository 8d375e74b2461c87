package expr

import (
	"tada/internal/arrok"
	"tada/internal/dtype"
	tadaerr "tada/internal/errors"
	"tada/internal/rolling"
)

// rollingOp wires one internal/rolling kernel into the chain: casts
// the input to f64, runs the kernel, and re-wraps the result as an
// f64 ArrOk. Every windowed method below (RollingMean, RollingStd,
// ...) is this helper bound to a different kernel function, mirroring
// how spec §4.2's kernel table shares one set of window/NaN semantics
// across every row.
func (e *Expr) rollingOp(op string, opt rolling.Options, kernel func([]float64, rolling.Options) []float64) *Expr {
	return e.ChainF(func(d Data) (Data, error) {
		a, err := arrOrErr(d, op)
		if err != nil {
			return Data{}, err
		}
		f, err := a.AsFloat()
		if err != nil {
			return Data{}, err
		}
		out := kernel(f.Slice(), opt)
		return DataFromArr(arrok.FromF64(arrok.NewOwned(out))), nil
	})
}

func (e *Expr) RollingSum(opt rolling.Options) *Expr  { return e.rollingOp("ts_sum", opt, rolling.Sum) }
func (e *Expr) RollingMean(opt rolling.Options) *Expr { return e.rollingOp("ts_mean", opt, rolling.Mean) }
func (e *Expr) RollingStd(opt rolling.Options) *Expr  { return e.rollingOp("ts_std", opt, rolling.Std) }
func (e *Expr) RollingVar(opt rolling.Options) *Expr  { return e.rollingOp("ts_var", opt, rolling.Var) }
func (e *Expr) RollingSkew(opt rolling.Options) *Expr { return e.rollingOp("ts_skew", opt, rolling.Skew) }
func (e *Expr) RollingKurt(opt rolling.Options) *Expr { return e.rollingOp("ts_kurt", opt, rolling.Kurt) }
func (e *Expr) RollingProd(opt rolling.Options) *Expr { return e.rollingOp("ts_prod", opt, rolling.Prod) }
func (e *Expr) RollingProdMean(opt rolling.Options) *Expr {
	return e.rollingOp("ts_prod_mean", opt, rolling.ProdMean)
}
func (e *Expr) RollingWMA(opt rolling.Options) *Expr { return e.rollingOp("ts_wma", opt, rolling.WMA) }
func (e *Expr) RollingEWM(opt rolling.Options) *Expr { return e.rollingOp("ts_ewm", opt, rolling.EWM) }
func (e *Expr) RollingReg(opt rolling.Options) *Expr { return e.rollingOp("ts_reg", opt, rolling.Reg) }
func (e *Expr) RollingRegSlope(opt rolling.Options) *Expr {
	return e.rollingOp("ts_reg_slope", opt, rolling.RegSlope)
}
func (e *Expr) RollingRegIntercept(opt rolling.Options) *Expr {
	return e.rollingOp("ts_reg_intercept", opt, rolling.RegIntercept)
}

// regAgainstOp wires a two-series regression kernel (regx_beta/regx_alpha)
// into the chain: x is evaluated against the same context as the
// receiver at run time, mirroring how Select/Filter resolve their
// second Expr argument lazily rather than eagerly.
func (e *Expr) regAgainstOp(op string, x *Expr, opt rolling.Options, kernel func(y, x []float64, opt rolling.Options) []float64) *Expr {
	return e.ChainFCtx(func(d Data, ctx *Context) (Data, *Context, error) {
		a, err := arrOrErr(d, op)
		if err != nil {
			return Data{}, ctx, err
		}
		y, err := a.AsFloat()
		if err != nil {
			return Data{}, ctx, err
		}
		xData, _, err := x.Eval(ctx)
		if err != nil {
			return Data{}, ctx, err
		}
		xArr, err := arrOrErr(xData, op)
		if err != nil {
			return Data{}, ctx, err
		}
		xf, err := xArr.AsFloat()
		if err != nil {
			return Data{}, ctx, err
		}
		out := kernel(y.Slice(), xf.Slice(), opt)
		return DataFromArr(arrok.FromF64(arrok.NewOwned(out))), ctx, nil
	})
}

// RollingRegXBeta computes the rolling OLS slope of the receiver
// against the external regressor x (spec §4.2 table "regx_beta").
func (e *Expr) RollingRegXBeta(x *Expr, opt rolling.Options) *Expr {
	return e.regAgainstOp("ts_regx_beta", x, opt, rolling.RegXBeta)
}

// RollingRegXAlpha computes the rolling OLS intercept of the receiver
// against the external regressor x (spec §4.2 table "regx_alpha").
func (e *Expr) RollingRegXAlpha(x *Expr, opt rolling.Options) *Expr {
	return e.regAgainstOp("ts_regx_alpha", x, opt, rolling.RegXAlpha)
}

// Shift appends the reverse-window shift kernel (spec §4.2 "Reverse
// windows").
func (e *Expr) Shift(offset int) *Expr {
	return e.ChainF(func(d Data) (Data, error) {
		a, err := arrOrErr(d, "shift")
		if err != nil {
			return Data{}, err
		}
		f, err := a.AsFloat()
		if err != nil {
			return Data{}, err
		}
		return DataFromArr(arrok.FromF64(arrok.NewOwned(rolling.Shift(f.Slice(), offset)))), nil
	})
}

// PctChange appends the reverse-window percent-change kernel (spec
// §4.2 "Reverse windows").
func (e *Expr) PctChange(offset int) *Expr {
	return e.ChainF(func(d Data) (Data, error) {
		a, err := arrOrErr(d, "pct_change")
		if err != nil {
			return Data{}, err
		}
		f, err := a.AsFloat()
		if err != nil {
			return Data{}, err
		}
		return DataFromArr(arrok.FromF64(arrok.NewOwned(rolling.PctChange(f.Slice(), offset)))), nil
	})
}

// Select appends a closure applying spec §4.6's select over the
// eventual evaluated index array.
func (e *Expr) Select(indices *Expr, axis int, check bool) *Expr {
	return e.ChainFCtx(func(d Data, ctx *Context) (Data, *Context, error) {
		a, err := arrOrErr(d, "select")
		if err != nil {
			return Data{}, ctx, err
		}
		idxData, _, err := indices.Eval(ctx)
		if err != nil {
			return Data{}, ctx, err
		}
		idxArr, err := arrOrErr(idxData, "select")
		if err != nil {
			return Data{}, ctx, err
		}
		out, err := a.Select(idxArr, axis, check)
		if err != nil {
			return Data{}, ctx, err
		}
		return DataFromArr(out), ctx, nil
	})
}

// Filter appends a closure applying spec §4.6's filter.
func (e *Expr) Filter(maskExpr *Expr, axis int) *Expr {
	return e.ChainFCtx(func(d Data, ctx *Context) (Data, *Context, error) {
		a, err := arrOrErr(d, "filter")
		if err != nil {
			return Data{}, ctx, err
		}
		maskData, _, err := maskExpr.Eval(ctx)
		if err != nil {
			return Data{}, ctx, err
		}
		maskArr, err := arrOrErr(maskData, "filter")
		if err != nil {
			return Data{}, ctx, err
		}
		if maskArr.Dtype() != dtype.Bool {
			return Data{}, ctx, tadaerr.New(tadaerr.UnsupportedDtype, "filter", "mask must be dtype bool")
		}
		out, err := a.Filter(maskArr.BoolSlice(), axis)
		if err != nil {
			return Data{}, ctx, err
		}
		return DataFromArr(out), ctx, nil
	})
}

// DropNA appends a closure applying the single-column drop-missing
// kernel (spec §4.6).
func (e *Expr) DropNA() *Expr {
	return e.ChainF(func(d Data) (Data, error) {
		a, err := arrOrErr(d, "dropna")
		if err != nil {
			return Data{}, err
		}
		out, err := a.DropNA()
		if err != nil {
			return Data{}, err
		}
		return DataFromArr(out), nil
	})
}
