package rolling

import "math"

const (
	skewMinPeriodsFloor = 3
	kurtMinPeriodsFloor = 4
)

type rawMoments struct {
	count               int
	sum, sumSq, sumCube, sumQuart float64
	cSum, cSq, cCube, cQuart      float64
}

func (m *rawMoments) add(v float64, stable bool) {
	m.count++
	if stable {
		m.sum, m.cSum = kahanAdd(m.sum, m.cSum, v)
		m.sumSq, m.cSq = kahanAdd(m.sumSq, m.cSq, v*v)
		m.sumCube, m.cCube = kahanAdd(m.sumCube, m.cCube, v*v*v)
		m.sumQuart, m.cQuart = kahanAdd(m.sumQuart, m.cQuart, v*v*v*v)
	} else {
		m.sum += v
		m.sumSq += v * v
		m.sumCube += v * v * v
		m.sumQuart += v * v * v * v
	}
}

func (m *rawMoments) remove(v float64, stable bool) {
	m.count--
	if stable {
		m.sum, m.cSum = kahanAdd(m.sum, m.cSum, -v)
		m.sumSq, m.cSq = kahanAdd(m.sumSq, m.cSq, -v*v)
		m.sumCube, m.cCube = kahanAdd(m.sumCube, m.cCube, -v*v*v)
		m.sumQuart, m.cQuart = kahanAdd(m.sumQuart, m.cQuart, -v*v*v*v)
	} else {
		m.sum -= v
		m.sumSq -= v * v
		m.sumCube -= v * v * v
		m.sumQuart -= v * v * v * v
	}
}

// central returns the population 2nd/3rd/4th central moments
// derived from the raw-moment accumulators, and the running mean.
func (m *rawMoments) central() (mean, m2, m3, m4 float64) {
	nf := float64(m.count)
	mean = m.sum / nf
	m2 = m.sumSq/nf - mean*mean
	m3 = m.sumCube/nf - 3*mean*m.sumSq/nf + 2*mean*mean*mean
	m4 = m.sumQuart/nf - 4*mean*m.sumCube/nf + 6*mean*mean*m.sumSq/nf - 3*mean*mean*mean*mean
	return
}

// Skew computes the adjusted Fisher-Pearson standardized rolling
// skewness (spec §4.2 table, min_periods floor 3). Windows whose
// second moment falls at or below the small-variance clamp report 0
// rather than NaN/Inf, per spec's "undefined shape ⇒ 0" convention.
func Skew(x []float64, opt Options) []float64 {
	n := len(x)
	out := make([]float64, n)
	mp := effectiveMinPeriods(opt, skewMinPeriodsFloor)
	var m rawMoments
	for i := 0; i < n; i++ {
		v := x[i]
		if !math.IsNaN(v) {
			m.add(v, opt.Stable)
		}
		if i >= opt.Window {
			d := x[i-opt.Window]
			if !math.IsNaN(d) {
				m.remove(d, opt.Stable)
			}
		}
		if m.count >= mp {
			_, m2, m3, _ := m.central()
			if m2 <= smallVarianceClamp {
				out[i] = 0
				continue
			}
			nf := float64(m.count)
			g1 := m3 / math.Pow(m2, 1.5)
			out[i] = math.Sqrt(nf*(nf-1)) / (nf - 2) * g1
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// Kurt computes the adjusted Fisher excess rolling kurtosis (spec §4.2
// table, min_periods floor 4).
func Kurt(x []float64, opt Options) []float64 {
	n := len(x)
	out := make([]float64, n)
	mp := effectiveMinPeriods(opt, kurtMinPeriodsFloor)
	var m rawMoments
	for i := 0; i < n; i++ {
		v := x[i]
		if !math.IsNaN(v) {
			m.add(v, opt.Stable)
		}
		if i >= opt.Window {
			d := x[i-opt.Window]
			if !math.IsNaN(d) {
				m.remove(d, opt.Stable)
			}
		}
		if m.count >= mp {
			_, m2, _, m4 := m.central()
			if m2 <= smallVarianceClamp {
				out[i] = 0
				continue
			}
			nf := float64(m.count)
			g2 := m4/(m2*m2) - 3
			out[i] = (nf - 1) / ((nf - 2) * (nf - 3)) * ((nf+1)*g2 + 6)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
