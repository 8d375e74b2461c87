package arrok

import (
	"tada/internal/dtype"
	tadaerr "tada/internal/errors"
)

// SameDtypeConcat1D concatenates same-dtype 1-D pieces (spec §3.3). All
// elements of pieces must share pieces[0]'s dtype, or it fails with
// UnsupportedDtype.
func SameDtypeConcat1D(pieces []ArrOk) (ArrOk, error) {
	if len(pieces) == 0 {
		return ArrOk{}, tadaerr.New(tadaerr.EmptyInput, "same_dtype_concat_1d", "no pieces to concatenate")
	}
	kind := pieces[0].Dtype()
	for _, p := range pieces[1:] {
		if p.Dtype() != kind {
			return ArrOk{}, tadaerr.Newf(tadaerr.UnsupportedDtype, "same_dtype_concat_1d", "piece dtype %s does not match %s", p.Dtype(), kind)
		}
	}
	switch kind {
	case dtype.Bool:
		return FromBool(NewOwned(concatSlices(pieces, func(a ArrOk) []bool { return a.boolArr.Slice() }))), nil
	case dtype.U8:
		return FromU8(NewOwned(concatSlices(pieces, func(a ArrOk) []uint8 { return a.u8Arr.Slice() }))), nil
	case dtype.I32:
		return FromI32(NewOwned(concatSlices(pieces, func(a ArrOk) []int32 { return a.i32Arr.Slice() }))), nil
	case dtype.I64:
		return FromI64(NewOwned(concatSlices(pieces, func(a ArrOk) []int64 { return a.i64Arr.Slice() }))), nil
	case dtype.U64:
		return FromU64(NewOwned(concatSlices(pieces, func(a ArrOk) []uint64 { return a.u64Arr.Slice() }))), nil
	case dtype.USize:
		return FromUSize(NewOwned(concatSlices(pieces, func(a ArrOk) []int { return a.usizeArr.Slice() }))), nil
	case dtype.F32:
		return FromF32(NewOwned(concatSlices(pieces, func(a ArrOk) []float32 { return a.f32Arr.Slice() }))), nil
	case dtype.F64:
		return FromF64(NewOwned(concatSlices(pieces, func(a ArrOk) []float64 { return a.f64Arr.Slice() }))), nil
	case dtype.OptBool:
		return FromOptBool(NewOwned(concatSlices(pieces, func(a ArrOk) []OptBool { return a.optBoolArr.Slice() }))), nil
	case dtype.OptI32:
		return FromOptI32(NewOwned(concatSlices(pieces, func(a ArrOk) []OptI32 { return a.optI32Arr.Slice() }))), nil
	case dtype.OptI64:
		return FromOptI64(NewOwned(concatSlices(pieces, func(a ArrOk) []OptI64 { return a.optI64Arr.Slice() }))), nil
	case dtype.OptF32:
		return FromOptF32(NewOwned(concatSlices(pieces, func(a ArrOk) []OptF32 { return a.optF32Arr.Slice() }))), nil
	case dtype.OptF64:
		return FromOptF64(NewOwned(concatSlices(pieces, func(a ArrOk) []OptF64 { return a.optF64Arr.Slice() }))), nil
	case dtype.OptUSize:
		return FromOptUSize(NewOwned(concatSlices(pieces, func(a ArrOk) []OptUSize { return a.optUSizeArr.Slice() }))), nil
	case dtype.String:
		return FromString(NewOwned(concatSlices(pieces, func(a ArrOk) []string { return a.strArr.Slice() }))), nil
	case dtype.DatetimeMs, dtype.DatetimeUs, dtype.DatetimeNs:
		return FromDatetime(kind, NewOwned(concatSlices(pieces, func(a ArrOk) []int64 { return a.dtArr.Slice() }))), nil
	case dtype.Timedelta:
		return FromTimedelta(NewOwned(concatSlices(pieces, func(a ArrOk) []int64 { return a.tdArr.Slice() }))), nil
	case dtype.Object:
		return FromObject(NewOwned(concatSlices(pieces, func(a ArrOk) []any { return a.objArr.Slice() }))), nil
	case dtype.VecUSize:
		return FromVecUSize(NewOwned(concatSlices(pieces, func(a ArrOk) [][]int { return a.vecUSize.Slice() }))), nil
	}
	return ArrOk{}, tadaerr.UnsupportedDtypeErr("same_dtype_concat_1d", "all", kind)
}

func concatSlices[T any](pieces []ArrOk, get func(ArrOk) []T) []T {
	total := 0
	for _, p := range pieces {
		total += p.Len()
	}
	out := make([]T, 0, total)
	for _, p := range pieces {
		out = append(out, get(p)...)
	}
	return out
}
