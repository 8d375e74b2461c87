package rolling

import "math"

// Shift returns x shifted by offset: out[i] = x[i-offset], so a
// positive offset looks backward and a negative offset looks |offset|
// steps ahead (out[i] = x[i+|offset|]). Positions with no
// corresponding source element are NaN.
func Shift(x []float64, offset int) []float64 {
	n := len(x)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		src := i - offset
		if src < 0 || src >= n {
			out[i] = math.NaN()
			continue
		}
		out[i] = x[src]
	}
	return out
}

// PctChange returns the fractional change between x[i] and the value
// `offset` positions back (or, for negative offset, forward): (x[i] -
// x[i-offset]) / x[i-offset]. Spec §4.2 "Reverse windows".
func PctChange(x []float64, offset int) []float64 {
	n := len(x)
	out := make([]float64, n)
	prev := Shift(x, offset)
	for i := 0; i < n; i++ {
		p := prev[i]
		v := x[i]
		if math.IsNaN(p) || math.IsNaN(v) || p == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = (v - p) / p
	}
	return out
}
