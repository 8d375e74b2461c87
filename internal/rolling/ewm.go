package rolling

import "math"

// EWM computes the rolling exponentially-weighted moving average (spec
// §4.2 table: alpha = 2/window, q = q_prev + (x_new - alpha*q_prev),
// output = q*alpha/(1-(1-alpha)^n)). The recurrence and its removal
// step are ported directly from the window-start/window-end staggered
// subtraction technique of the reference implementation rather than
// re-derived, since the removal term's exponent (oma^n, evaluated
// *after* decrementing n) is easy to get off-by-one on.
func EWM(x []float64, opt Options) []float64 {
	n := len(x)
	out := make([]float64, n)
	window := opt.Window
	if window > n {
		window = n
	}
	if window < opt.MinPeriods {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	alpha := 2 / float64(window)
	oma := 1 - alpha
	qx := 0.0
	count := 0
	for i := 0; i < n; i++ {
		v := x[i]
		if !math.IsNaN(v) {
			count++
			qx += v - alpha*qx
		}
		if count >= opt.MinPeriods {
			out[i] = qx * alpha / (1 - math.Pow(oma, float64(count)))
		} else {
			out[i] = math.NaN()
		}
		if i >= opt.Window-1 {
			d := x[i-opt.Window+1]
			if !math.IsNaN(d) {
				count--
				qx -= d * math.Pow(oma, float64(count))
			}
		}
	}
	return out
}
