package rolling

import "math"

// regMinPeriodsFloor mirrors the variance family: a line needs at least
// two points to have a defined slope (spec §4.2 table, regression row).
const regMinPeriodsFloor = 2

// regState accumulates the four running sums a simple linear
// regression against the in-window rank 0..count-1 needs: Σx (rank),
// Σx², Σy, Σxy. Using the rank as the independent variable lets
// every regression kernel share one accumulator shape, the same way
// the variance family shares rawMoments.
type regState struct {
	count                    int
	sumX, sumX2, sumY, sumXY float64
	cX, cX2, cY, cXY         float64
}

func (s *regState) add(rank float64, y float64, stable bool) {
	s.count++
	if stable {
		s.sumX, s.cX = kahanAdd(s.sumX, s.cX, rank)
		s.sumX2, s.cX2 = kahanAdd(s.sumX2, s.cX2, rank*rank)
		s.sumY, s.cY = kahanAdd(s.sumY, s.cY, y)
		s.sumXY, s.cXY = kahanAdd(s.sumXY, s.cXY, rank*y)
	} else {
		s.sumX += rank
		s.sumX2 += rank * rank
		s.sumY += y
		s.sumXY += rank * y
	}
}

// slopeIntercept solves the ordinary-least-squares line y = a + b*x for
// the window's accumulated moments, returning slope b and intercept a.
func (s *regState) slopeIntercept() (slope, intercept float64) {
	n := float64(s.count)
	meanX := s.sumX / n
	meanY := s.sumY / n
	covXY := s.sumXY/n - meanX*meanY
	varX := s.sumX2/n - meanX*meanX
	if varX <= smallVarianceClamp {
		return 0, meanY
	}
	slope = covXY / varX
	intercept = meanY - slope*meanX
	return
}

// rollRegression drives every regression-family kernel: it recomputes
// the window's moments from scratch at each step (rather than
// step-in/step-out) because the independent variable is the in-window
// rank, which shifts for every element already in the window whenever
// the window slides. Recomputing keeps the rank-to-value mapping
// correct without re-deriving an incremental rank-shift update.
func rollRegression(x []float64, opt Options, out func(slope, intercept float64, lastX, lastRank float64) float64) []float64 {
	n := len(x)
	res := make([]float64, n)
	mp := effectiveMinPeriods(opt, regMinPeriodsFloor)
	for i := 0; i < n; i++ {
		start := windowOf(i, opt.Window)
		var s regState
		rank := -1.0
		lastRank := 0.0
		lastX := math.NaN()
		for j := start; j <= i; j++ {
			v := x[j]
			if math.IsNaN(v) {
				continue
			}
			rank++
			s.add(rank, v, opt.Stable)
			lastRank = rank
			lastX = v
		}
		if s.count >= mp {
			slope, intercept := s.slopeIntercept()
			res[i] = out(slope, intercept, lastX, lastRank)
		} else {
			res[i] = math.NaN()
		}
	}
	return res
}

// RegSlope computes the rolling OLS slope of the window's values
// against their in-window rank (spec §4.2 table).
func RegSlope(x []float64, opt Options) []float64 {
	return rollRegression(x, opt, func(slope, intercept, lastX, lastRank float64) float64 {
		return slope
	})
}

// RegIntercept computes the rolling OLS intercept (spec §4.2 table).
func RegIntercept(x []float64, opt Options) []float64 {
	return rollRegression(x, opt, func(slope, intercept, lastX, lastRank float64) float64 {
		return intercept
	})
}

// Reg computes the rolling fitted value at the window's last rank (the
// "time series forecast" / tsf kernel of spec §4.2 table): the OLS line
// evaluated at the most recent in-window x.
func Reg(x []float64, opt Options) []float64 {
	return rollRegression(x, opt, func(slope, intercept, lastX, lastRank float64) float64 {
		return intercept + slope*lastRank
	})
}

// RegXBeta and RegXAlpha compute the rolling OLS slope/intercept of the
// primary series y against a second series x supplied by the caller
// (spec §4.2 table: "regx_beta"/"regx_alpha", regression of y on an
// external regressor rather than against rank). They share the
// window/step bookkeeping with the rank-based regression family but
// pair each y[j] with x[j] directly instead of with j's in-window rank.
func RegXBeta(y, x []float64, opt Options) []float64 {
	return regAgainst(y, x, opt, func(slope, intercept float64) float64 { return slope })
}

func RegXAlpha(y, x []float64, opt Options) []float64 {
	return regAgainst(y, x, opt, func(slope, intercept float64) float64 { return intercept })
}

func regAgainst(y, x []float64, opt Options, pick func(slope, intercept float64) float64) []float64 {
	n := len(y)
	out := make([]float64, n)
	mp := effectiveMinPeriods(opt, regMinPeriodsFloor)
	for i := 0; i < n; i++ {
		start := windowOf(i, opt.Window)
		var s regState
		for j := start; j <= i; j++ {
			xv, yv := x[j], y[j]
			if math.IsNaN(xv) || math.IsNaN(yv) {
				continue
			}
			s.add(xv, yv, opt.Stable)
		}
		if s.count >= mp {
			slope, intercept := s.slopeIntercept()
			out[i] = pick(slope, intercept)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
