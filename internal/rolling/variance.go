package rolling

import "math"

// varianceMinPeriodsFloor is the std/var min_periods floor from spec
// §4.2 ("std ≥ 2"): sample variance needs at least two observations for
// ddof=1 to be defined.
const varianceMinPeriodsFloor = 2

// Var computes the rolling sample variance (ddof=1), spec §4.2 table
// and §8 "Variance non-negativity". When opt.Stable is false, the
// default naive two-moment recurrence (Σx, Σx²) is used; when true,
// Welford's online algorithm replaces it (spec §9 open question,
// resolved: naive is the stable=false default, Welford only runs under
// stable=true).
func Var(x []float64, opt Options) []float64 {
	if opt.Stable {
		return welfordVariance(x, opt)
	}
	return naiveVariance(x, opt)
}

// Std is Var's square root, with the same small-variance clamp applied
// before the sqrt (spec §4.2 "Variance numerical guard").
func Std(x []float64, opt Options) []float64 {
	v := Var(x, opt)
	out := make([]float64, len(v))
	for i, vv := range v {
		if math.IsNaN(vv) {
			out[i] = math.NaN()
			continue
		}
		out[i] = math.Sqrt(vv)
	}
	return out
}

func naiveVariance(x []float64, opt Options) []float64 {
	n := len(x)
	out := make([]float64, n)
	mp := effectiveMinPeriods(opt, varianceMinPeriodsFloor)
	count := 0
	sum, sumComp := 0.0, 0.0
	sumSq, sumSqComp := 0.0, 0.0
	for i := 0; i < n; i++ {
		v := x[i]
		if !math.IsNaN(v) {
			count++
			if opt.Stable {
				sum, sumComp = kahanAdd(sum, sumComp, v)
				sumSq, sumSqComp = kahanAdd(sumSq, sumSqComp, v*v)
			} else {
				sum += v
				sumSq += v * v
			}
		}
		if i >= opt.Window {
			d := x[i-opt.Window]
			if !math.IsNaN(d) {
				count--
				if opt.Stable {
					sum, sumComp = kahanAdd(sum, sumComp, -d)
					sumSq, sumSqComp = kahanAdd(sumSq, sumSqComp, -d*d)
				} else {
					sum -= d
					sumSq -= d * d
				}
			}
		}
		if count >= mp {
			out[i] = sampleVarianceFromMoments(sum, sumSq, count)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// sampleVarianceFromMoments applies the ddof=1 correction and the
// small-variance clamp described in spec §4.2.
func sampleVarianceFromMoments(sum, sumSq float64, count int) float64 {
	nf := float64(count)
	mean := sum / nf
	m2 := sumSq/nf - mean*mean
	if m2 <= smallVarianceClamp {
		m2 = 0
	}
	return nf / (nf - 1) * m2
}

// welfordVariance implements Welford's online algorithm: running mean
// and M2 (sum of squared deviations from the running mean), updated
// incrementally on both step-in and step-out. This is the numerically
// stable alternative the spec requires to agree with the naive form to
// 1e-9 relative error (spec §8 "Kahan-vs-naïve agreement").
func welfordVariance(x []float64, opt Options) []float64 {
	n := len(x)
	out := make([]float64, n)
	mp := effectiveMinPeriods(opt, varianceMinPeriodsFloor)
	count := 0
	mean := 0.0
	m2 := 0.0
	for i := 0; i < n; i++ {
		v := x[i]
		if !math.IsNaN(v) {
			count++
			delta := v - mean
			mean += delta / float64(count)
			delta2 := v - mean
			m2 += delta * delta2
		}
		if i >= opt.Window {
			d := x[i-opt.Window]
			if !math.IsNaN(d) {
				if count > 1 {
					delta := d - mean
					newCount := count - 1
					newMean := mean - delta/float64(newCount)
					m2 -= (d - mean) * (d - newMean)
					mean = newMean
				} else {
					mean, m2 = 0, 0
				}
				count--
			}
		}
		if count >= mp {
			v := m2 / float64(count)
			if v <= smallVarianceClamp {
				v = 0
			}
			out[i] = float64(count) / float64(count-1) * v
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
