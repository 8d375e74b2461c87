package expr

import (
	"tada/internal/arrok"
	"tada/internal/dtype"
	tadaerr "tada/internal/errors"
)

// Cast appends a closure that converts the evaluated output to the
// given dtype, a no-op if the current dtype already matches (spec
// §4.3.6). It only applies to single-array (Arr) data.
func (e *Expr) Cast(target dtype.Kind) *Expr {
	return e.ChainF(func(d Data) (Data, error) {
		if d.kind != KindArr {
			return Data{}, tadaerr.New(tadaerr.UnsupportedDtype, "cast", "cast requires a single array, not a vector")
		}
		out, err := d.arr.Cast(target)
		if err != nil {
			return Data{}, err
		}
		return DataFromArr(out), nil
	})
}

// The named cast_* helpers mirror spec §4.3.6's explicit list: each is
// Cast bound to one concrete target dtype, so callers match the
// engine's own vocabulary instead of threading dtype.Kind constants
// through call sites.
func (e *Expr) CastBool() *Expr          { return e.Cast(dtype.Bool) }
func (e *Expr) CastF32() *Expr           { return e.Cast(dtype.F32) }
func (e *Expr) CastF64() *Expr           { return e.Cast(dtype.F64) }
func (e *Expr) CastI32() *Expr           { return e.Cast(dtype.I32) }
func (e *Expr) CastI64() *Expr           { return e.Cast(dtype.I64) }
func (e *Expr) CastUSize() *Expr         { return e.Cast(dtype.USize) }
func (e *Expr) CastString() *Expr        { return e.Cast(dtype.String) }
func (e *Expr) CastTimedelta() *Expr     { return e.Cast(dtype.Timedelta) }
func (e *Expr) CastDatetime(unit dtype.Kind) *Expr {
	return e.Cast(unit)
}

// arrOrErr is a small helper closures below use to require a
// single-array Data and surface a consistent error otherwise.
func arrOrErr(d Data, op string) (arrok.ArrOk, error) {
	if d.kind != KindArr {
		return arrok.ArrOk{}, tadaerr.New(tadaerr.UnsupportedDtype, op, "operation requires a single array, not a vector")
	}
	return d.arr, nil
}
