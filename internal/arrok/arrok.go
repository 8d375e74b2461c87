package arrok

import (
	"tada/internal/dtype"
	tadaerr "tada/internal/errors"
)

// ArrOk is the dynamic, dtype-tagged array container of spec §3.3: a
// tagged union over ArbArray[T] for every supported T. Exactly one of
// the typed fields is non-nil, selected by Kind.
//
// A field-per-variant struct (rather than an interface{} or reflect
// based union) is the "tagged-union enum with exhaustive match" option
// spec §9 calls out explicitly, and keeps every Cast/Select/aggregate
// dispatch a plain switch instead of a type assertion chain.
type ArrOk struct {
	kind dtype.Kind

	boolArr  *ArbArray[bool]
	u8Arr    *ArbArray[uint8]
	i32Arr   *ArbArray[int32]
	i64Arr   *ArbArray[int64]
	u64Arr   *ArbArray[uint64]
	usizeArr *ArbArray[int]
	f32Arr   *ArbArray[float32]
	f64Arr   *ArbArray[float64]

	optBoolArr  *ArbArray[OptBool]
	optI32Arr   *ArbArray[OptI32]
	optI64Arr   *ArbArray[OptI64]
	optF32Arr   *ArbArray[OptF32]
	optF64Arr   *ArbArray[OptF64]
	optUSizeArr *ArbArray[OptUSize]

	strArr *ArbArray[string]
	dtArr  *ArbArray[int64] // datetime ticks; unit is carried by kind
	tdArr  *ArbArray[int64] // timedelta, in nanoseconds

	objArr    *ArbArray[any]
	vecUSize  *ArbArray[[]int]
}

func FromBool(a *ArbArray[bool]) ArrOk     { return ArrOk{kind: dtype.Bool, boolArr: a} }
func FromU8(a *ArbArray[uint8]) ArrOk      { return ArrOk{kind: dtype.U8, u8Arr: a} }
func FromI32(a *ArbArray[int32]) ArrOk     { return ArrOk{kind: dtype.I32, i32Arr: a} }
func FromI64(a *ArbArray[int64]) ArrOk     { return ArrOk{kind: dtype.I64, i64Arr: a} }
func FromU64(a *ArbArray[uint64]) ArrOk    { return ArrOk{kind: dtype.U64, u64Arr: a} }
func FromUSize(a *ArbArray[int]) ArrOk     { return ArrOk{kind: dtype.USize, usizeArr: a} }
func FromF32(a *ArbArray[float32]) ArrOk   { return ArrOk{kind: dtype.F32, f32Arr: a} }
func FromF64(a *ArbArray[float64]) ArrOk   { return ArrOk{kind: dtype.F64, f64Arr: a} }

func FromOptBool(a *ArbArray[OptBool]) ArrOk   { return ArrOk{kind: dtype.OptBool, optBoolArr: a} }
func FromOptI32(a *ArbArray[OptI32]) ArrOk     { return ArrOk{kind: dtype.OptI32, optI32Arr: a} }
func FromOptI64(a *ArbArray[OptI64]) ArrOk     { return ArrOk{kind: dtype.OptI64, optI64Arr: a} }
func FromOptF32(a *ArbArray[OptF32]) ArrOk     { return ArrOk{kind: dtype.OptF32, optF32Arr: a} }
func FromOptF64(a *ArbArray[OptF64]) ArrOk     { return ArrOk{kind: dtype.OptF64, optF64Arr: a} }
func FromOptUSize(a *ArbArray[OptUSize]) ArrOk { return ArrOk{kind: dtype.OptUSize, optUSizeArr: a} }

func FromString(a *ArbArray[string]) ArrOk { return ArrOk{kind: dtype.String, strArr: a} }

// FromDatetime wraps ticks as one of the three datetime kinds, chosen
// by unit; it panics when unit is not a datetime kind.
func FromDatetime(unit dtype.Kind, a *ArbArray[int64]) ArrOk {
	if unit != dtype.DatetimeMs && unit != dtype.DatetimeUs && unit != dtype.DatetimeNs {
		panic("arrok: unit must be a datetime kind")
	}
	return ArrOk{kind: unit, dtArr: a}
}

func FromTimedelta(a *ArbArray[int64]) ArrOk { return ArrOk{kind: dtype.Timedelta, tdArr: a} }
func FromObject(a *ArbArray[any]) ArrOk      { return ArrOk{kind: dtype.Object, objArr: a} }
func FromVecUSize(a *ArbArray[[]int]) ArrOk  { return ArrOk{kind: dtype.VecUSize, vecUSize: a} }

// Dtype returns the runtime tag (spec §3.3 dtype()).
func (a ArrOk) Dtype() dtype.Kind { return a.kind }

// Ndim returns the array's dimensionality.
func (a ArrOk) Ndim() int { return a.shapeHolder().Ndim() }

// Shape returns the array's shape.
func (a ArrOk) Shape() []int { return a.shapeHolder().Shape() }

// Len returns the total element count.
func (a ArrOk) Len() int { return a.shapeHolder().Len() }

// LenOf returns the extent along one axis.
func (a ArrOk) LenOf(axis int) int { return a.shapeHolder().LenOf(axis) }

// shapeHolder is an internal helper interface implemented by ArbArray[T]
// for any T, letting the shape/len accessors above stay dtype-generic
// without a 20-way switch each.
type shapeHolder interface {
	Ndim() int
	Shape() []int
	Len() int
	LenOf(axis int) int
}

func (a ArrOk) shapeHolder() shapeHolder {
	switch a.kind {
	case dtype.Bool:
		return a.boolArr
	case dtype.U8:
		return a.u8Arr
	case dtype.I32:
		return a.i32Arr
	case dtype.I64:
		return a.i64Arr
	case dtype.U64:
		return a.u64Arr
	case dtype.USize:
		return a.usizeArr
	case dtype.F32:
		return a.f32Arr
	case dtype.F64:
		return a.f64Arr
	case dtype.OptBool:
		return a.optBoolArr
	case dtype.OptI32:
		return a.optI32Arr
	case dtype.OptI64:
		return a.optI64Arr
	case dtype.OptF32:
		return a.optF32Arr
	case dtype.OptF64:
		return a.optF64Arr
	case dtype.OptUSize:
		return a.optUSizeArr
	case dtype.String:
		return a.strArr
	case dtype.DatetimeMs, dtype.DatetimeUs, dtype.DatetimeNs:
		return a.dtArr
	case dtype.Timedelta:
		return a.tdArr
	case dtype.Object:
		return a.objArr
	case dtype.VecUSize:
		return a.vecUSize
	}
	panic("arrok: unknown dtype")
}

// View normalizes ViewMut/Owned to an immutable View without copying
// (spec §3.3 view()/deref()).
func (a ArrOk) View() ArrOk {
	switch a.kind {
	case dtype.Bool:
		return FromBool(a.boolArr.View())
	case dtype.U8:
		return FromU8(a.u8Arr.View())
	case dtype.I32:
		return FromI32(a.i32Arr.View())
	case dtype.I64:
		return FromI64(a.i64Arr.View())
	case dtype.U64:
		return FromU64(a.u64Arr.View())
	case dtype.USize:
		return FromUSize(a.usizeArr.View())
	case dtype.F32:
		return FromF32(a.f32Arr.View())
	case dtype.F64:
		return FromF64(a.f64Arr.View())
	case dtype.OptBool:
		return FromOptBool(a.optBoolArr.View())
	case dtype.OptI32:
		return FromOptI32(a.optI32Arr.View())
	case dtype.OptI64:
		return FromOptI64(a.optI64Arr.View())
	case dtype.OptF32:
		return FromOptF32(a.optF32Arr.View())
	case dtype.OptF64:
		return FromOptF64(a.optF64Arr.View())
	case dtype.OptUSize:
		return FromOptUSize(a.optUSizeArr.View())
	case dtype.String:
		return FromString(a.strArr.View())
	case dtype.DatetimeMs, dtype.DatetimeUs, dtype.DatetimeNs:
		return FromDatetime(a.kind, a.dtArr.View())
	case dtype.Timedelta:
		return FromTimedelta(a.tdArr.View())
	case dtype.Object:
		return FromObject(a.objArr.View())
	case dtype.VecUSize:
		return FromVecUSize(a.vecUSize.View())
	}
	panic("arrok: unknown dtype")
}

// Deref is an alias for View, matching the spec's naming (§3.3).
func (a ArrOk) Deref() ArrOk { return a.View() }

// Slice1D returns a zero-copy view over the half-open row range
// [lo, hi) along axis 0, used by the rolling-apply and
// rolling-by-startidx drivers to build each window's sub-array without
// materializing a fresh copy per window (spec §4.2/§4.4).
func (a ArrOk) Slice1D(lo, hi int) (ArrOk, error) {
	switch a.kind {
	case dtype.Bool:
		return FromBool(a.boolArr.Sub1D(lo, hi)), nil
	case dtype.U8:
		return FromU8(a.u8Arr.Sub1D(lo, hi)), nil
	case dtype.I32:
		return FromI32(a.i32Arr.Sub1D(lo, hi)), nil
	case dtype.I64:
		return FromI64(a.i64Arr.Sub1D(lo, hi)), nil
	case dtype.U64:
		return FromU64(a.u64Arr.Sub1D(lo, hi)), nil
	case dtype.USize:
		return FromUSize(a.usizeArr.Sub1D(lo, hi)), nil
	case dtype.F32:
		return FromF32(a.f32Arr.Sub1D(lo, hi)), nil
	case dtype.F64:
		return FromF64(a.f64Arr.Sub1D(lo, hi)), nil
	case dtype.OptBool:
		return FromOptBool(a.optBoolArr.Sub1D(lo, hi)), nil
	case dtype.OptI32:
		return FromOptI32(a.optI32Arr.Sub1D(lo, hi)), nil
	case dtype.OptI64:
		return FromOptI64(a.optI64Arr.Sub1D(lo, hi)), nil
	case dtype.OptF32:
		return FromOptF32(a.optF32Arr.Sub1D(lo, hi)), nil
	case dtype.OptF64:
		return FromOptF64(a.optF64Arr.Sub1D(lo, hi)), nil
	case dtype.OptUSize:
		return FromOptUSize(a.optUSizeArr.Sub1D(lo, hi)), nil
	case dtype.String:
		return FromString(a.strArr.Sub1D(lo, hi)), nil
	case dtype.DatetimeMs, dtype.DatetimeUs, dtype.DatetimeNs:
		return FromDatetime(a.kind, a.dtArr.Sub1D(lo, hi)), nil
	case dtype.Timedelta:
		return FromTimedelta(a.tdArr.Sub1D(lo, hi)), nil
	case dtype.Object:
		return FromObject(a.objArr.Sub1D(lo, hi)), nil
	case dtype.VecUSize:
		return FromVecUSize(a.vecUSize.Sub1D(lo, hi)), nil
	}
	return ArrOk{}, tadaerr.UnsupportedDtypeErr("slice1d", "all", a.kind)
}

// IntoOwned materializes without aliasing (spec §3.3).
func (a ArrOk) IntoOwned() ArrOk {
	switch a.kind {
	case dtype.Bool:
		return FromBool(a.boolArr.IntoOwned())
	case dtype.U8:
		return FromU8(a.u8Arr.IntoOwned())
	case dtype.I32:
		return FromI32(a.i32Arr.IntoOwned())
	case dtype.I64:
		return FromI64(a.i64Arr.IntoOwned())
	case dtype.U64:
		return FromU64(a.u64Arr.IntoOwned())
	case dtype.USize:
		return FromUSize(a.usizeArr.IntoOwned())
	case dtype.F32:
		return FromF32(a.f32Arr.IntoOwned())
	case dtype.F64:
		return FromF64(a.f64Arr.IntoOwned())
	case dtype.OptBool:
		return FromOptBool(a.optBoolArr.IntoOwned())
	case dtype.OptI32:
		return FromOptI32(a.optI32Arr.IntoOwned())
	case dtype.OptI64:
		return FromOptI64(a.optI64Arr.IntoOwned())
	case dtype.OptF32:
		return FromOptF32(a.optF32Arr.IntoOwned())
	case dtype.OptF64:
		return FromOptF64(a.optF64Arr.IntoOwned())
	case dtype.OptUSize:
		return FromOptUSize(a.optUSizeArr.IntoOwned())
	case dtype.String:
		return FromString(a.strArr.IntoOwned())
	case dtype.DatetimeMs, dtype.DatetimeUs, dtype.DatetimeNs:
		return FromDatetime(a.kind, a.dtArr.IntoOwned())
	case dtype.Timedelta:
		return FromTimedelta(a.tdArr.IntoOwned())
	case dtype.Object:
		return FromObject(a.objArr.IntoOwned())
	case dtype.VecUSize:
		return FromVecUSize(a.vecUSize.IntoOwned())
	}
	panic("arrok: unknown dtype")
}

// F64Slice returns the backing []float64 for an F64 array, panicking on
// dtype mismatch. Internal packages (rolling, expr) that already know
// they hold an F64 column use this instead of re-dispatching.
func (a ArrOk) F64Slice() []float64 {
	if a.kind != dtype.F64 {
		panic("arrok: F64Slice on non-f64 array")
	}
	return a.f64Arr.Slice()
}

// F64Arb exposes the typed ArbArray[float64] directly.
func (a ArrOk) F64Arb() *ArbArray[float64] {
	if a.kind != dtype.F64 {
		panic("arrok: F64Arb on non-f64 array")
	}
	return a.f64Arr
}

// StringSlice returns the backing []string for a String array.
func (a ArrOk) StringSlice() []string {
	if a.kind != dtype.String {
		panic("arrok: StringSlice on non-string array")
	}
	return a.strArr.Slice()
}

// I64Slice returns the backing []int64 for an I64 array.
func (a ArrOk) I64Slice() []int64 {
	if a.kind != dtype.I64 {
		panic("arrok: I64Slice on non-i64 array")
	}
	return a.i64Arr.Slice()
}

// DatetimeSlice returns the backing ticks for a datetime array of any
// unit, plus the unit kind.
func (a ArrOk) DatetimeSlice() ([]int64, dtype.Kind) {
	if !dtype.IsTimeRelated(a.kind) || a.kind == dtype.Timedelta {
		panic("arrok: DatetimeSlice on non-datetime array")
	}
	return a.dtArr.Slice(), a.kind
}

// BoolSlice returns the backing []bool for a Bool array.
func (a ArrOk) BoolSlice() []bool {
	if a.kind != dtype.Bool {
		panic("arrok: BoolSlice on non-bool array")
	}
	return a.boolArr.Slice()
}
