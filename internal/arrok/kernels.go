package arrok

import (
	"math"
	"sort"

	"tada/internal/dtype"
	tadaerr "tada/internal/errors"
)

// Eager array kernels (spec §2 "Eager array kernels"): aggregations,
// ranking, argsort, partition/quantile, clipping, fillna, shift/diff,
// all implemented as generic 1-D routines over the float64 working
// representation every numeric dtype casts to, mirroring the way the
// teacher's Series aggregations (Sum/Mean/Std/Median/Min/Max) operate
// over a plain []float64 rather than the dynamic ArrOk.

// Sum, Mean, Min, Max, Std and Var are the eager (whole-array, not
// windowed) counterparts of the rolling kernels; they ignore NaNs.

func Sum(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		if !math.IsNaN(v) {
			sum += v
		}
	}
	return sum
}

func Mean(x []float64) float64 {
	sum := 0.0
	n := 0
	for _, v := range x {
		if !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

func Min(x []float64) float64 {
	m := math.NaN()
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(m) || v < m {
			m = v
		}
	}
	return m
}

func Max(x []float64) float64 {
	m := math.NaN()
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(m) || v > m {
			m = v
		}
	}
	return m
}

// Var is the eager sample variance (ddof=1), sharing the small-variance
// clamp used by the rolling family.
func Var(x []float64) float64 {
	n := 0
	sum, sumSq := 0.0, 0.0
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		n++
		sum += v
		sumSq += v * v
	}
	if n < 2 {
		return math.NaN()
	}
	nf := float64(n)
	mean := sum / nf
	m2 := sumSq/nf - mean*mean
	if m2 <= 1e-14 {
		m2 = 0
	}
	return nf / (nf - 1) * m2
}

func Std(x []float64) float64 {
	return math.Sqrt(Var(x))
}

// Median returns the 50th percentile via Quantile.
func Median(x []float64) float64 {
	return Quantile(x, 0.5)
}

// Quantile returns the linearly-interpolated quantile q in [0,1] over
// the non-NaN elements of x (NaNs are dropped before ranking).
func Quantile(x []float64, q float64) float64 {
	vals := dropNaN(x)
	if len(vals) == 0 {
		return math.NaN()
	}
	sort.Float64s(vals)
	if len(vals) == 1 {
		return vals[0]
	}
	pos := q * float64(len(vals)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return vals[lo]
	}
	frac := pos - float64(lo)
	return vals[lo]*(1-frac) + vals[hi]*frac
}

func dropNaN(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Argsort returns the permutation of indices that would sort x
// ascending, with NaNs sorted to the end (spec's argsort eager
// kernel). A stable sort preserves ties' original relative order.
func Argsort(x []float64) []int {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		va, vb := x[idx[a]], x[idx[b]]
		if math.IsNaN(va) {
			return false
		}
		if math.IsNaN(vb) {
			return true
		}
		return va < vb
	})
	return idx
}

// Rank returns the 1-based average rank of each element (ties receive
// the mean of the ranks they would occupy), NaN propagated through.
func Rank(x []float64) []float64 {
	n := len(x)
	order := Argsort(x)
	ranks := make([]float64, n)
	i := 0
	for i < n {
		v := x[order[i]]
		if math.IsNaN(v) {
			for ; i < n; i++ {
				ranks[order[i]] = math.NaN()
			}
			break
		}
		j := i
		for j < n && !math.IsNaN(x[order[j]]) && x[order[j]] == v {
			j++
		}
		avgRank := float64(i+j+1) / 2.0
		for k := i; k < j; k++ {
			ranks[order[k]] = avgRank
		}
		i = j
	}
	return ranks
}

// Clip bounds every element of x to [lo, hi]; a NaN bound disables that
// side. NaN inputs pass through unchanged.
func Clip(x []float64, lo, hi float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if math.IsNaN(v) {
			out[i] = v
			continue
		}
		if !math.IsNaN(lo) && v < lo {
			v = lo
		}
		if !math.IsNaN(hi) && v > hi {
			v = hi
		}
		out[i] = v
	}
	return out
}

// FillNA replaces NaN elements with value.
func FillNA(x []float64, value float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if math.IsNaN(v) {
			out[i] = value
			continue
		}
		out[i] = v
	}
	return out
}

// FillNAForward carries the last non-NaN value forward into subsequent
// NaN positions (leading NaNs stay NaN).
func FillNAForward(x []float64) []float64 {
	out := make([]float64, len(x))
	last := math.NaN()
	for i, v := range x {
		if math.IsNaN(v) {
			out[i] = last
			continue
		}
		last = v
		out[i] = v
	}
	return out
}

// Diff returns x[i] - x[i-periods], NaN for positions with no
// predecessor.
func Diff(x []float64, periods int) []float64 {
	n := len(x)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		j := i - periods
		if j < 0 || j >= n {
			out[i] = math.NaN()
			continue
		}
		out[i] = x[i] - x[j]
	}
	return out
}

// SortedF64 sorts an ArrOk of dtype F64 in Argsort order, reversed when
// ascending is false, returning the sorted array and the permutation
// used, so callers that must keep
// parallel columns aligned can re-apply it via Select.
func SortedF64(a ArrOk, ascending bool) (ArrOk, []int, error) {
	if a.Dtype() != dtype.F64 {
		return ArrOk{}, nil, tadaerr.UnsupportedDtypeErr("sort", "f64", a.kind)
	}
	x := a.f64Arr.Slice()
	idx := Argsort(x)
	if !ascending {
		reverseInts(idx)
	}
	out := make([]float64, len(x))
	for i, j := range idx {
		out[i] = x[j]
	}
	return FromF64(NewOwned(out)), idx, nil
}

func reverseInts(x []int) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}

// Stack combines same-dtype, same-length 1-D pieces into a single
// owned 2-D array of shape [len(pieces), n] (spec's "concat/stack"
// eager kernel, the row-major sibling of SameDtypeConcat1D's flat
// concatenation). Only numeric dtypes are supported, since a stacked
// array is consumed by downstream float64 kernels.
func Stack(pieces []ArrOk) (ArrOk, error) {
	if len(pieces) == 0 {
		return ArrOk{}, tadaerr.New(tadaerr.EmptyInput, "stack", "no pieces given")
	}
	n := pieces[0].Len()
	flat := make([]float64, 0, len(pieces)*n)
	for _, p := range pieces {
		if p.Len() != n {
			return ArrOk{}, tadaerr.New(tadaerr.ShapeMismatch, "stack", "pieces must share length")
		}
		f, err := p.AsFloat()
		if err != nil {
			return ArrOk{}, err
		}
		flat = append(flat, f.Slice()...)
	}
	return FromF64(NewOwnedShape(flat, []int{len(pieces), n})), nil
}
