// Package rolling implements the windowed numerical kernels of spec
// §4.2: moving sum, mean, EWM, WMA, variance family, regression family
// and product family, with NaN-aware accounting and an optional
// Kahan-compensated ("stable") summation path. Most kernels update
// running sums in a single O(n) pass; WMA and the regression family
// recompute each window from its elements.
package rolling

import "math"

// Options are the parameters every rolling kernel accepts (spec §4.2).
type Options struct {
	Window     int
	MinPeriods int
	// Stable selects Kahan-compensated summation for every running sum,
	// and switches variance-family kernels to Welford's online
	// algorithm, per spec §4.2/§9.
	Stable bool
}

// smallVarianceClamp is the 1e-14 numerical guard of spec §4.2: once a
// variance estimate's second-moment-minus-squared-mean falls at or
// below this threshold, it is treated as exactly zero to avoid taking
// sqrt of a tiny negative caused by floating point cancellation. This
// threshold is load-bearing for skew/kurt under a constant window
// (spec §9 open question) and is preserved verbatim rather than
// replaced.
const smallVarianceClamp = 1e-14

// kahanAdd performs one step of Kahan compensated summation: adds v to
// sum, using and updating the running compensator c. Each independent
// running quantity must own its own compensator (spec §9); sharing one
// across quantities reintroduces the bias Kahan summation exists to
// avoid.
func kahanAdd(sum, c, v float64) (newSum, newC float64) {
	y := v - c
	t := sum + y
	newC = (t - sum) - y
	return t, newC
}

func effectiveMinPeriods(opt Options, floor int) int {
	mp := opt.MinPeriods
	if floor > mp {
		mp = floor
	}
	if mp < 1 {
		mp = 1
	}
	return mp
}

func windowOf(i, window int) int {
	start := i - window + 1
	if start < 0 {
		start = 0
	}
	return start
}

// WindowStart exposes windowOf for callers outside the package (the
// rolling-apply driver needs the same [max(0, i-window+1), i] start
// rule the kernels use internally, spec §4.2).
func WindowStart(i, window int) int {
	return windowOf(i, window)
}
