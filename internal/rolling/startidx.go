package rolling

import "math"

// ApplyByStartIndex evaluates agg over x[starts[i]..=i] for each i,
// given a caller-supplied array of window-start indices (spec §4.2
// "Rolling-by-startidx driver"). It is the numeric-kernel half of the
// driver: the expression-level half, which builds a per-step DataDict
// of sliced columns sharing the parent's name map rather than calling
// agg directly on a float64 slice, lives in the datadict package.
func ApplyByStartIndex(x []float64, starts []int, agg func([]float64) float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		s := starts[i]
		if s < 0 || s > i {
			out[i] = math.NaN()
			continue
		}
		out[i] = agg(x[s : i+1])
	}
	return out
}
