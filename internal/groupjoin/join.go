package groupjoin

import tadaerr "tada/internal/errors"

// LeftJoin finds, for each row of leftKeys, its first unconsumed match
// on rightKeys by fingerprint, returning a parallel slice of matched
// right-side indices (-1 for no match). Duplicate right-side keys are
// served in reverse insertion order — pop from the tail of that key's
// match list — per spec §4.5's stated (if surprising) duplicate
// policy, preserved as-is rather than replaced with FIFO.
func LeftJoin(leftKeys, rightKeys []uint64) []int {
	matches := make(map[uint64][]int, len(rightKeys))
	for i, k := range rightKeys {
		matches[k] = append(matches[k], i)
	}
	out := make([]int, len(leftKeys))
	for i, k := range leftKeys {
		list := matches[k]
		if len(list) == 0 {
			out[i] = -1
			continue
		}
		last := len(list) - 1
		out[i] = list[last]
		matches[k] = list[:last]
	}
	return out
}

// OuterPair is one row of an outer join's output: Left/Right are -1
// when that side has no row for this key (spec §4.5 outer join).
type OuterPair struct {
	Left  int
	Right int
}

// OuterJoin records each distinct key in the order it is first seen
// (left side first, then right), together with the first left index and
// the first right index at which it occurs, then emits one OuterPair
// per distinct key in that order (spec §4.5 outer join).
func OuterJoin(leftKeys, rightKeys []uint64) []OuterPair {
	order := make([]uint64, 0, len(leftKeys)+len(rightKeys))
	seen := make(map[uint64]int)
	leftIdx := make(map[uint64]int)
	rightIdx := make(map[uint64]int)

	for i, k := range leftKeys {
		if _, ok := seen[k]; !ok {
			seen[k] = len(order)
			order = append(order, k)
		}
		if _, ok := leftIdx[k]; !ok {
			leftIdx[k] = i
		}
	}
	for i, k := range rightKeys {
		if _, ok := seen[k]; !ok {
			seen[k] = len(order)
			order = append(order, k)
		}
		if _, ok := rightIdx[k]; !ok {
			rightIdx[k] = i
		}
	}

	out := make([]OuterPair, len(order))
	for i, k := range order {
		l, hasL := leftIdx[k]
		r, hasR := rightIdx[k]
		pair := OuterPair{Left: -1, Right: -1}
		if hasL {
			pair.Left = l
		}
		if hasR {
			pair.Right = r
		}
		out[i] = pair
	}
	return out
}

// CheckKeyLengths validates that every key column shares the length of
// the leftmost one (spec §4.5 "Key-length check"), failing with
// KeyMismatch — spec §7's taxonomy member reserved specifically for
// join/groupby keys of inconsistent length.
func CheckKeyLengths(cols [][]string) error {
	if len(cols) == 0 {
		return nil
	}
	n := len(cols[0])
	for i, c := range cols[1:] {
		if len(c) != n {
			return tadaerr.Newf(tadaerr.KeyMismatch, "join", "key column %d has length %d, expected %d", i+1, len(c), n)
		}
	}
	return nil
}
