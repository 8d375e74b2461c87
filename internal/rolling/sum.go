package rolling

import "math"

// Sum computes the rolling sum (spec §4.2, §8 "Rolling-sum invariant").
func Sum(x []float64, opt Options) []float64 {
	n := len(x)
	out := make([]float64, n)
	mp := effectiveMinPeriods(opt, 0)
	count := 0
	sum, comp := 0.0, 0.0
	for i := 0; i < n; i++ {
		v := x[i]
		if !math.IsNaN(v) {
			count++
			if opt.Stable {
				sum, comp = kahanAdd(sum, comp, v)
			} else {
				sum += v
			}
		}
		if i >= opt.Window {
			d := x[i-opt.Window]
			if !math.IsNaN(d) {
				count--
				if opt.Stable {
					sum, comp = kahanAdd(sum, comp, -d)
				} else {
					sum -= d
				}
			}
		}
		if count >= mp {
			out[i] = sum
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// Mean computes the rolling mean (spec §4.2, §8 scenario 1).
func Mean(x []float64, opt Options) []float64 {
	n := len(x)
	out := make([]float64, n)
	mp := effectiveMinPeriods(opt, 0)
	count := 0
	sum, comp := 0.0, 0.0
	for i := 0; i < n; i++ {
		v := x[i]
		if !math.IsNaN(v) {
			count++
			if opt.Stable {
				sum, comp = kahanAdd(sum, comp, v)
			} else {
				sum += v
			}
		}
		if i >= opt.Window {
			d := x[i-opt.Window]
			if !math.IsNaN(d) {
				count--
				if opt.Stable {
					sum, comp = kahanAdd(sum, comp, -d)
				} else {
					sum -= d
				}
			}
		}
		if count >= mp {
			out[i] = sum / float64(count)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// WMA computes the linearly-weighted rolling mean: accumulators Σx and
// Σ(i·x) where i is the in-window rank (1-based), output
// Σ(i·x) / (n(n+1)/2) (spec §4.2 table).
//
// WMA re-derives its weighted sum each step from the window's raw
// values rather than keeping a single incremental accumulator, since
// the weight attached to every element in the window shifts by one
// each step; this keeps it exact without a shared compensator across an
// unbounded number of reweighted terms.
func WMA(x []float64, opt Options) []float64 {
	n := len(x)
	out := make([]float64, n)
	mp := effectiveMinPeriods(opt, 0)
	for i := 0; i < n; i++ {
		start := windowOf(i, opt.Window)
		count := 0
		weightedSum, wComp := 0.0, 0.0
		rank := 0
		for j := start; j <= i; j++ {
			v := x[j]
			if math.IsNaN(v) {
				continue
			}
			rank++
			count++
			term := float64(rank) * v
			if opt.Stable {
				weightedSum, wComp = kahanAdd(weightedSum, wComp, term)
			} else {
				weightedSum += term
			}
		}
		if count >= mp {
			denom := float64(count*(count+1)) / 2
			out[i] = weightedSum / denom
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
