package arrok

import (
	"math"
	"strconv"
	"time"

	"github.com/ncruces/go-strftime"

	"tada/internal/dtype"
	tadaerr "tada/internal/errors"
)

// datetimeScale returns the number of nanoseconds in one tick of the
// given datetime unit (1 for any other kind); datetime-to-datetime
// casts scale ticks by the ratio of two such values (spec §4.3.6).
func datetimeScale(unit dtype.Kind) int64 {
	switch unit {
	case dtype.DatetimeMs:
		return int64(time.Millisecond)
	case dtype.DatetimeUs:
		return int64(time.Microsecond)
	case dtype.DatetimeNs:
		return int64(time.Nanosecond)
	}
	return 1
}

// AsFloat coerces a to the canonical float width (f64), per spec §3.3.
// Accepts bool, integer, float and option-numeric/bool dtypes; option
// "none" and already-NaN float entries propagate to NaN.
func (a ArrOk) AsFloat() (*ArbArray[float64], error) {
	n := a.Len()
	out := make([]float64, n)
	switch a.kind {
	case dtype.Bool:
		s := a.boolArr.Slice()
		for i, v := range s {
			if v {
				out[i] = 1
			}
		}
	case dtype.U8:
		s := a.u8Arr.Slice()
		for i, v := range s {
			out[i] = float64(v)
		}
	case dtype.I32:
		s := a.i32Arr.Slice()
		for i, v := range s {
			out[i] = float64(v)
		}
	case dtype.I64:
		s := a.i64Arr.Slice()
		for i, v := range s {
			out[i] = float64(v)
		}
	case dtype.U64:
		s := a.u64Arr.Slice()
		for i, v := range s {
			out[i] = float64(v)
		}
	case dtype.USize:
		s := a.usizeArr.Slice()
		for i, v := range s {
			out[i] = float64(v)
		}
	case dtype.F32:
		s := a.f32Arr.Slice()
		for i, v := range s {
			out[i] = float64(v)
		}
	case dtype.F64:
		return a.f64Arr.IntoOwned(), nil
	case dtype.OptBool:
		s := a.optBoolArr.Slice()
		for i, v := range s {
			switch {
			case !v.Valid:
				out[i] = math.NaN()
			case v.V:
				out[i] = 1
			}
		}
	case dtype.OptI32:
		s := a.optI32Arr.Slice()
		for i, v := range s {
			if v.Valid {
				out[i] = float64(v.V)
			} else {
				out[i] = math.NaN()
			}
		}
	case dtype.OptI64:
		s := a.optI64Arr.Slice()
		for i, v := range s {
			if v.Valid {
				out[i] = float64(v.V)
			} else {
				out[i] = math.NaN()
			}
		}
	case dtype.OptF32:
		s := a.optF32Arr.Slice()
		for i, v := range s {
			if v.Valid {
				out[i] = float64(v.V)
			} else {
				out[i] = math.NaN()
			}
		}
	case dtype.OptF64:
		s := a.optF64Arr.Slice()
		for i, v := range s {
			if v.Valid {
				out[i] = v.V
			} else {
				out[i] = math.NaN()
			}
		}
	case dtype.OptUSize:
		s := a.optUSizeArr.Slice()
		for i, v := range s {
			if v.Valid {
				out[i] = float64(v.V)
			} else {
				out[i] = math.NaN()
			}
		}
	default:
		return nil, tadaerr.UnsupportedDtypeErr("as_float", "numeric", a.kind)
	}
	return NewOwned(out), nil
}

// AsInt coerces a to the canonical int width (i64), per spec §3.3.
func (a ArrOk) AsInt() (*ArbArray[int64], error) {
	n := a.Len()
	out := make([]int64, n)
	switch a.kind {
	case dtype.Bool:
		s := a.boolArr.Slice()
		for i, v := range s {
			if v {
				out[i] = 1
			}
		}
	case dtype.U8:
		s := a.u8Arr.Slice()
		for i, v := range s {
			out[i] = int64(v)
		}
	case dtype.I32:
		s := a.i32Arr.Slice()
		for i, v := range s {
			out[i] = int64(v)
		}
	case dtype.I64:
		return a.i64Arr.IntoOwned(), nil
	case dtype.U64:
		s := a.u64Arr.Slice()
		for i, v := range s {
			out[i] = int64(v)
		}
	case dtype.USize:
		s := a.usizeArr.Slice()
		for i, v := range s {
			out[i] = int64(v)
		}
	case dtype.F32:
		s := a.f32Arr.Slice()
		for i, v := range s {
			out[i] = int64(v)
		}
	case dtype.F64:
		s := a.f64Arr.Slice()
		for i, v := range s {
			out[i] = int64(v)
		}
	default:
		return nil, tadaerr.UnsupportedDtypeErr("as_int", "numeric", a.kind)
	}
	return NewOwned(out), nil
}

// Cast converts a elementwise to the target dtype. It is a no-op if
// a.Dtype() already equals target, which is what makes cast idempotent
// (spec §4.3.6, tested by the Cast idempotence property in spec §8).
func (a ArrOk) Cast(target dtype.Kind) (ArrOk, error) {
	if a.kind == target {
		return a, nil
	}
	if !dtype.IsCastable(a.kind) || !dtype.IsCastable(target) {
		return ArrOk{}, tadaerr.UnsupportedDtypeErr("cast", "castable", a.kind)
	}

	switch target {
	case dtype.F64:
		f, err := a.AsFloat()
		if err == nil {
			return FromF64(f), nil
		}
		if a.kind == dtype.String {
			return castStringToFloat64(a)
		}
		return ArrOk{}, err
	case dtype.F32:
		f, err := a.AsFloat()
		if err != nil {
			if a.kind == dtype.String {
				f64, err2 := castStringToFloat64(a)
				if err2 != nil {
					return ArrOk{}, err2
				}
				f = f64.f64Arr
			} else {
				return ArrOk{}, err
			}
		}
		out := make([]float32, f.Len())
		for i, v := range f.Slice() {
			out[i] = float32(v)
		}
		return FromF32(NewOwned(out)), nil
	case dtype.I64:
		if a.kind == dtype.String {
			return castStringToInt64(a)
		}
		if dtype.IsTimeRelated(a.kind) {
			ticks, _ := a.DatetimeOrTimedeltaSlice()
			return FromI64(NewOwned(append([]int64(nil), ticks...))), nil
		}
		i, err := a.AsInt()
		if err != nil {
			return ArrOk{}, err
		}
		return FromI64(i), nil
	case dtype.I32:
		i, err := a.AsInt()
		if err != nil {
			return ArrOk{}, err
		}
		out := make([]int32, i.Len())
		for idx, v := range i.Slice() {
			out[idx] = int32(v)
		}
		return FromI32(NewOwned(out)), nil
	case dtype.USize:
		i, err := a.AsInt()
		if err != nil {
			return ArrOk{}, err
		}
		out := make([]int, i.Len())
		for idx, v := range i.Slice() {
			out[idx] = int(v)
		}
		return FromUSize(NewOwned(out)), nil
	case dtype.Bool:
		f, err := a.AsFloat()
		if err != nil {
			return ArrOk{}, err
		}
		out := make([]bool, f.Len())
		for idx, v := range f.Slice() {
			out[idx] = v != 0
		}
		return FromBool(NewOwned(out)), nil
	case dtype.String:
		return castToString(a)
	case dtype.DatetimeMs, dtype.DatetimeUs, dtype.DatetimeNs:
		return castToDatetime(a, target)
	case dtype.Timedelta:
		i, err := a.AsInt()
		if err != nil {
			return ArrOk{}, err
		}
		return FromTimedelta(i), nil
	}
	return ArrOk{}, tadaerr.UnsupportedDtypeErr("cast", "castable", target)
}

// DatetimeOrTimedeltaSlice returns the raw ticks backing a datetime or
// timedelta array, regardless of unit.
func (a ArrOk) DatetimeOrTimedeltaSlice() ([]int64, dtype.Kind) {
	if a.kind == dtype.Timedelta {
		return a.tdArr.Slice(), a.kind
	}
	return a.DatetimeSlice()
}

func castStringToFloat64(a ArrOk) (ArrOk, error) {
	s := a.strArr.Slice()
	out := make([]float64, len(s))
	for i, v := range s {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return ArrOk{}, tadaerr.Wrap(tadaerr.CastFailure, "cast_f64", err, "cannot parse %q as f64", v)
		}
		out[i] = f
	}
	return FromF64(NewOwned(out)), nil
}

func castStringToInt64(a ArrOk) (ArrOk, error) {
	s := a.strArr.Slice()
	out := make([]int64, len(s))
	for i, v := range s {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return ArrOk{}, tadaerr.Wrap(tadaerr.CastFailure, "cast_i64", err, "cannot parse %q as i64", v)
		}
		out[i] = n
	}
	return FromI64(NewOwned(out)), nil
}

// defaultDatetimeLayout is the strftime-style format tada uses to
// render/parse datetime<->string casts; strftime.Layout translates it to
// a Go time layout once, rather than hand-writing the Go reference-time
// layout string.
const defaultDatetimeLayout = "%Y-%m-%dT%H:%M:%S"

func castToString(a ArrOk) (ArrOk, error) {
	n := a.Len()
	out := make([]string, n)
	switch {
	case a.kind == dtype.Bool:
		for i, v := range a.boolArr.Slice() {
			out[i] = strconv.FormatBool(v)
		}
	case dtype.IsTimeRelated(a.kind):
		ticks, unit := a.DatetimeOrTimedeltaSlice()
		layout := strftime.Layout(defaultDatetimeLayout)
		scale := datetimeScale(unit)
		if unit == dtype.Timedelta {
			for i, t := range ticks {
				out[i] = time.Duration(t).String()
			}
		} else {
			for i, t := range ticks {
				out[i] = time.Unix(0, t*scale).UTC().Format(layout)
			}
		}
	default:
		f, err := a.AsFloat()
		if err != nil {
			return ArrOk{}, err
		}
		for i, v := range f.Slice() {
			out[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
	}
	return FromString(NewOwned(out)), nil
}

func castToDatetime(a ArrOk, target dtype.Kind) (ArrOk, error) {
	switch {
	case dtype.IsTimeRelated(a.kind):
		ticks, unit := a.DatetimeOrTimedeltaSlice()
		fromScale := datetimeScale(unit)
		toScale := datetimeScale(target)
		out := make([]int64, len(ticks))
		for i, t := range ticks {
			out[i] = t * fromScale / toScale
		}
		return FromDatetime(target, NewOwned(out)), nil
	case a.kind == dtype.String:
		layout := strftime.Layout(defaultDatetimeLayout)
		s := a.strArr.Slice()
		toScale := datetimeScale(target)
		out := make([]int64, len(s))
		for i, v := range s {
			t, err := time.Parse(layout, v)
			if err != nil {
				return ArrOk{}, tadaerr.Wrap(tadaerr.CastFailure, "cast_datetime", err, "cannot parse %q as datetime", v)
			}
			out[i] = t.UnixNano() / toScale
		}
		return FromDatetime(target, NewOwned(out)), nil
	default:
		i, err := a.AsInt()
		if err != nil {
			return ArrOk{}, err
		}
		return FromDatetime(target, i), nil
	}
}
