package rolling

// StartPolicy selects how time-bucketed window starts are anchored
// (spec §4.2 "Time-bucketed rolling starts").
type StartPolicy int

const (
	// Full slides the window back from each timestamp: the start is the
	// earliest index whose timestamp still falls within window of the
	// current one.
	Full StartPolicy = iota
	// DurationStart truncates each timestamp's window anchor down to the
	// duration grid (dt[i] - (dt[i] mod window)) before locating the
	// start index, so every row in the same grid bucket shares a start.
	DurationStart
)

// StartIndicesByTime computes, for a sorted (ascending) datetime column
// dt and a window duration (in the same tick unit as dt), the
// length-N array of window-start indices s[i] (spec §4.2
// "Time-bucketed rolling starts"): s[i] = min{j : dt[i] <= dt[j] +
// window} under the Full policy, advancing a running pointer in a
// single linear pass rather than binary-searching per row. (The
// boundary is inclusive: a row exactly `window` ticks after the
// candidate start still belongs to the window, matching the reference
// concrete scenario of a timestamp landing exactly on the window edge.)
func StartIndicesByTime(dt []int64, window int64, policy StartPolicy) []int {
	n := len(dt)
	starts := make([]int, n)
	j := 0
	for i := 0; i < n; i++ {
		anchor := dt[i]
		if policy == DurationStart && window > 0 {
			anchor -= anchor % window
		}
		if j > i {
			j = i
		}
		for j < i && dt[i] > dt[j]+window {
			j++
		}
		if policy == DurationStart {
			for j < i && dt[j] < anchor {
				j++
			}
		}
		starts[i] = j
	}
	return starts
}
