package arrok

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"tada/internal/dtype"
	tadaerr "tada/internal/errors"
)

// Select implements spec §4.6's four index-dtype modes along axis 0:
//   - usize indices: plain fancy-index, bounds-checked when check is true.
//   - i32 indices with check: negative indices wrap (add length).
//   - option<usize> indices: missing positions produce the dtype's none
//     sentinel; integer sources implicitly promote to float so NaN can
//     be represented (spec §8 scenario 6).
//   - bool indices: mask selection, equivalent to Filter.
func (a ArrOk) Select(indices ArrOk, axis int, check bool) (ArrOk, error) {
	if axis != 0 {
		return ArrOk{}, tadaerr.New(tadaerr.DimMismatch, "select", "only axis 0 is supported")
	}
	switch indices.Dtype() {
	case dtype.USize:
		return a.selectUSize(indices.usizeArr.Slice(), check)
	case dtype.I32:
		return a.selectI32Wrapping(indices.i32Arr.Slice(), check)
	case dtype.OptUSize:
		return a.selectOptUSize(indices.optUSizeArr.Slice())
	case dtype.Bool:
		return a.Filter(indices.boolArr.Slice(), axis)
	}
	return ArrOk{}, tadaerr.UnsupportedDtypeErr("select", "usize|i32|option<usize>|bool", indices.kind)
}

func (a ArrOk) selectUSize(idx []int, check bool) (ArrOk, error) {
	n := a.Len()
	if check {
		for _, i := range idx {
			if i < 0 || i >= n {
				return ArrOk{}, tadaerr.Newf(tadaerr.OutOfBounds, "select", "index %d out of bounds for length %d", i, n)
			}
		}
	}
	return gather(a, idx)
}

func (a ArrOk) selectI32Wrapping(idx []int32, check bool) (ArrOk, error) {
	n := a.Len()
	resolved := make([]int, len(idx))
	for i, v := range idx {
		r := int(v)
		if r < 0 {
			r += n
		}
		if check && (r < 0 || r >= n) {
			return ArrOk{}, tadaerr.Newf(tadaerr.OutOfBounds, "select", "index %d out of bounds for length %d", v, n)
		}
		resolved[i] = r
	}
	return gather(a, resolved)
}

// selectOptUSize promotes integer sources to float64 so that a missing
// index can be represented as NaN (spec §4.6, §8 scenario 6). Non
// numeric, non-promotable sources fail with UnsupportedDtype.
func (a ArrOk) selectOptUSize(idx []OptUSize) (ArrOk, error) {
	if dtype.IsNumeric(a.kind) || a.kind == dtype.Bool {
		src, err := a.AsFloat()
		if err != nil {
			return ArrOk{}, err
		}
		out := make([]float64, len(idx))
		s := src.Slice()
		for i, oi := range idx {
			if !oi.Valid {
				out[i] = math.NaN()
				continue
			}
			if oi.V < 0 || oi.V >= len(s) {
				return ArrOk{}, tadaerr.Newf(tadaerr.OutOfBounds, "select", "index %d out of bounds for length %d", oi.V, len(s))
			}
			out[i] = s[oi.V]
		}
		return FromF64(NewOwned(out)), nil
	}
	if a.kind == dtype.OptF64 {
		s := a.optF64Arr.Slice()
		out := make([]OptF64, len(idx))
		for i, oi := range idx {
			if !oi.Valid {
				out[i] = NoneF64()
				continue
			}
			out[i] = s[oi.V]
		}
		return FromOptF64(NewOwned(out)), nil
	}
	return ArrOk{}, tadaerr.UnsupportedDtypeErr("select", "numeric|option<f64>", a.kind)
}

// gather dispatches a plain fancy-index over every supported dtype.
func gather(a ArrOk, idx []int) (ArrOk, error) {
	switch a.kind {
	case dtype.Bool:
		return FromBool(NewOwned(gatherSlice(a.boolArr.Slice(), idx))), nil
	case dtype.U8:
		return FromU8(NewOwned(gatherSlice(a.u8Arr.Slice(), idx))), nil
	case dtype.I32:
		return FromI32(NewOwned(gatherSlice(a.i32Arr.Slice(), idx))), nil
	case dtype.I64:
		return FromI64(NewOwned(gatherSlice(a.i64Arr.Slice(), idx))), nil
	case dtype.U64:
		return FromU64(NewOwned(gatherSlice(a.u64Arr.Slice(), idx))), nil
	case dtype.USize:
		return FromUSize(NewOwned(gatherSlice(a.usizeArr.Slice(), idx))), nil
	case dtype.F32:
		return FromF32(NewOwned(gatherSlice(a.f32Arr.Slice(), idx))), nil
	case dtype.F64:
		return FromF64(NewOwned(gatherSlice(a.f64Arr.Slice(), idx))), nil
	case dtype.OptBool:
		return FromOptBool(NewOwned(gatherSlice(a.optBoolArr.Slice(), idx))), nil
	case dtype.OptI32:
		return FromOptI32(NewOwned(gatherSlice(a.optI32Arr.Slice(), idx))), nil
	case dtype.OptI64:
		return FromOptI64(NewOwned(gatherSlice(a.optI64Arr.Slice(), idx))), nil
	case dtype.OptF32:
		return FromOptF32(NewOwned(gatherSlice(a.optF32Arr.Slice(), idx))), nil
	case dtype.OptF64:
		return FromOptF64(NewOwned(gatherSlice(a.optF64Arr.Slice(), idx))), nil
	case dtype.OptUSize:
		return FromOptUSize(NewOwned(gatherSlice(a.optUSizeArr.Slice(), idx))), nil
	case dtype.String:
		return FromString(NewOwned(gatherSlice(a.strArr.Slice(), idx))), nil
	case dtype.DatetimeMs, dtype.DatetimeUs, dtype.DatetimeNs:
		return FromDatetime(a.kind, NewOwned(gatherSlice(a.dtArr.Slice(), idx))), nil
	case dtype.Timedelta:
		return FromTimedelta(NewOwned(gatherSlice(a.tdArr.Slice(), idx))), nil
	case dtype.Object:
		return FromObject(NewOwned(gatherSlice(a.objArr.Slice(), idx))), nil
	case dtype.VecUSize:
		return FromVecUSize(NewOwned(gatherSlice(a.vecUSize.Slice(), idx))), nil
	}
	return ArrOk{}, tadaerr.UnsupportedDtypeErr("select", "all", a.kind)
}

func gatherSlice[T any](src []T, idx []int) []T {
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = src[j]
	}
	return out
}

// maskToIndices converts a boolean mask to the list of true positions,
// via a roaring.Bitmap rather than a hand-grown slice scan, so that
// dense masks over large arrays get a compact positional representation
// (spec §4.6's bool-mask Select mode, and Filter).
func maskToIndices(mask []bool) []int {
	bm := roaring.New()
	for i, v := range mask {
		if v {
			bm.Add(uint32(i))
		}
	}
	arr := bm.ToArray()
	out := make([]int, len(arr))
	for i, v := range arr {
		out[i] = int(v)
	}
	return out
}

// Filter keeps positions where mask is true (spec §4.6).
func (a ArrOk) Filter(mask []bool, axis int) (ArrOk, error) {
	if axis != 0 {
		return ArrOk{}, tadaerr.New(tadaerr.DimMismatch, "filter", "only axis 0 is supported")
	}
	if len(mask) != a.Len() {
		return ArrOk{}, tadaerr.Newf(tadaerr.ShapeMismatch, "filter", "mask length %d does not match array length %d", len(mask), a.Len())
	}
	return gather(a, maskToIndices(mask))
}

// DropNAHow selects the missingness policy for DropNA.
type DropNAHow int

const (
	// DropAny drops a row if any selected column is NaN/none.
	DropAny DropNAHow = iota
	// DropAll drops a row only if every selected column is NaN/none.
	DropAll
)

// IsNAMask returns a per-row missingness mask (true = missing) for a
// single array, used by dropna (spec §4.6) and by rolling NaN
// accounting elsewhere.
func (a ArrOk) IsNAMask() ([]bool, error) {
	n := a.Len()
	out := make([]bool, n)
	switch a.kind {
	case dtype.F32:
		for i, v := range a.f32Arr.Slice() {
			out[i] = math.IsNaN(float64(v))
		}
	case dtype.F64:
		for i, v := range a.f64Arr.Slice() {
			out[i] = math.IsNaN(v)
		}
	case dtype.OptBool:
		for i, v := range a.optBoolArr.Slice() {
			out[i] = !v.Valid
		}
	case dtype.OptI32:
		for i, v := range a.optI32Arr.Slice() {
			out[i] = !v.Valid
		}
	case dtype.OptI64:
		for i, v := range a.optI64Arr.Slice() {
			out[i] = !v.Valid
		}
	case dtype.OptF32:
		for i, v := range a.optF32Arr.Slice() {
			out[i] = !v.Valid
		}
	case dtype.OptF64:
		for i, v := range a.optF64Arr.Slice() {
			out[i] = !v.Valid
		}
	case dtype.OptUSize:
		for i, v := range a.optUSizeArr.Slice() {
			out[i] = !v.Valid
		}
	default:
		// Non-option, non-float dtypes have no representable "none".
	}
	return out, nil
}

// DropNAMask combines the per-row missingness of several columns into
// a single keep-mask (true = keep the row), per the DropAny/DropAll
// policy (spec §4.6). All columns must share the same length.
func DropNAMask(cols []ArrOk, how DropNAHow) ([]bool, error) {
	if len(cols) == 0 {
		return nil, tadaerr.New(tadaerr.EmptyInput, "dropna", "no columns given")
	}
	n := cols[0].Len()
	keep := make([]bool, n)
	for i := range keep {
		keep[i] = true
	}
	allMissing := make([]bool, n)
	for i := range allMissing {
		allMissing[i] = true
	}
	for _, c := range cols {
		if c.Len() != n {
			return nil, tadaerr.Newf(tadaerr.ShapeMismatch, "dropna", "column length %d does not match %d", c.Len(), n)
		}
		na, err := c.IsNAMask()
		if err != nil {
			return nil, err
		}
		for i, missing := range na {
			if missing {
				keep[i] = false
			} else {
				allMissing[i] = false
			}
		}
	}
	if how == DropAll {
		for i := range keep {
			keep[i] = !allMissing[i]
		}
	}
	return keep, nil
}

// DropNA filters the array's own rows using its own missingness mask
// (the single-column case of DropNAMask; spec §4.6).
func (a ArrOk) DropNA() (ArrOk, error) {
	mask, err := a.IsNAMask()
	if err != nil {
		return ArrOk{}, err
	}
	keep := make([]bool, len(mask))
	for i, m := range mask {
		keep[i] = !m
	}
	return a.Filter(keep, 0)
}
