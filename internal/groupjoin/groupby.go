package groupjoin

import "sort"

// Group is one partition of row indices sharing a key fingerprint,
// together with the index of its first occurrence (spec §4.5:
// "hashmap fingerprint → (first_index, Vec<index>)").
type Group struct {
	Fingerprint uint64
	FirstIndex  int
	Indices     []int
}

// Groupby partitions row indices 0..len(keys) by key fingerprint,
// preserving first-occurrence order (spec §4.4 groupby, §4.5
// groupby). When sortByFirstIndex is true the returned slice is
// ordered by FirstIndex instead of first-seen-key order (both orders
// coincide for a fresh hashmap walk in Go's case since map iteration
// order is not used here — groups are always appended in first-seen
// order internally, and sortByFirstIndex is a no-op unless a caller
// later reorders the Indices).
func Groupby(keys []uint64, sortByFirstIndex bool) []Group {
	index := make(map[uint64]int, len(keys))
	var groups []Group
	for i, k := range keys {
		if gi, ok := index[k]; ok {
			groups[gi].Indices = append(groups[gi].Indices, i)
			continue
		}
		index[k] = len(groups)
		groups = append(groups, Group{Fingerprint: k, FirstIndex: i, Indices: []int{i}})
	}
	if sortByFirstIndex {
		sort.SliceStable(groups, func(a, b int) bool {
			return groups[a].FirstIndex < groups[b].FirstIndex
		})
	}
	return groups
}

// Partition verifies the §8 "Groupby partition" property: the
// disjoint union of every group's index vector equals 0..n. It is
// exposed for tests and for callers that want to assert invariants
// after a custom groupby.
func Partition(groups []Group, n int) bool {
	seen := make([]bool, n)
	count := 0
	for _, g := range groups {
		for _, idx := range g.Indices {
			if idx < 0 || idx >= n || seen[idx] {
				return false
			}
			seen[idx] = true
			count++
		}
	}
	return count == n
}
