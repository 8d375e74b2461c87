package rolling

import "math"

// prodState tracks a running product over the non-zero elements of the
// window plus a count of zero elements, so that dividing out a
// departing element never divides by zero (spec §4.2 table: "Π over
// non-zero, count of zeros").
type prodState struct {
	count        int
	zeroCount    int
	nonZeroProd  float64
}

func (s *prodState) add(v float64) {
	s.count++
	if v == 0 {
		s.zeroCount++
		return
	}
	s.nonZeroProd *= v
}

func (s *prodState) remove(v float64) {
	s.count--
	if v == 0 {
		s.zeroCount--
		return
	}
	s.nonZeroProd /= v
}

func newProdState() prodState {
	return prodState{nonZeroProd: 1}
}

// Prod computes the rolling product: zero if the window contains any
// zero element, else the product of the window (spec §4.2 table).
func Prod(x []float64, opt Options) []float64 {
	n := len(x)
	out := make([]float64, n)
	mp := effectiveMinPeriods(opt, 0)
	s := newProdState()
	for i := 0; i < n; i++ {
		v := x[i]
		if !math.IsNaN(v) {
			s.add(v)
		}
		if i >= opt.Window {
			d := x[i-opt.Window]
			if !math.IsNaN(d) {
				s.remove(d)
			}
		}
		if s.count >= mp {
			if s.zeroCount > 0 {
				out[i] = 0
			} else {
				out[i] = s.nonZeroProd
			}
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// ProdMean computes the rolling geometric mean: Prod^(1/n) (spec §4.2
// table).
func ProdMean(x []float64, opt Options) []float64 {
	n := len(x)
	out := make([]float64, n)
	mp := effectiveMinPeriods(opt, 0)
	s := newProdState()
	for i := 0; i < n; i++ {
		v := x[i]
		if !math.IsNaN(v) {
			s.add(v)
		}
		if i >= opt.Window {
			d := x[i-opt.Window]
			if !math.IsNaN(d) {
				s.remove(d)
			}
		}
		if s.count >= mp {
			p := s.nonZeroProd
			if s.zeroCount > 0 {
				p = 0
			}
			out[i] = math.Pow(p, 1/float64(s.count))
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
