package groupjoin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeftJoinScenario3(t *testing.T) {
	left := FingerprintColumns([][]string{{"a", "b", "a", "d"}})
	right := FingerprintColumns([][]string{{"b", "b", "c", "e"}})
	got := LeftJoin(left, right)
	assert.Equal(t, []int{-1, 1, -1, -1}, got)
}

func TestGroupbyTwoKeysScenario4(t *testing.T) {
	k1 := []string{"0", "1", "0", "1", "0"}
	k2 := []string{"x", "y", "x", "y", "x"}
	keys := FingerprintColumns([][]string{k1, k2})
	groups := Groupby(keys, false)
	require.Len(t, groups, 2)

	wantFirst := [][]int{{0, 2, 4}, {1, 3}}
	for gi, g := range groups {
		assert.Equalf(t, wantFirst[gi], g.Indices, "group %d", gi)
	}
	assert.True(t, Partition(groups, 5), "groups do not partition 0..5")
}

func TestOuterJoinPreservesFirstSeenOrder(t *testing.T) {
	left := FingerprintColumns([][]string{{"a", "b"}})
	right := FingerprintColumns([][]string{{"b", "c"}})
	pairs := OuterJoin(left, right)
	require.Len(t, pairs, 3)

	assert.Equal(t, OuterPair{Left: 0, Right: -1}, pairs[0], "left-only \"a\"")
	assert.Equal(t, OuterPair{Left: 1, Right: 0}, pairs[1], "matched \"b\"")
	assert.Equal(t, OuterPair{Left: -1, Right: 1}, pairs[2], "right-only \"c\"")
}

func TestCheckKeyLengthsRejectsMismatch(t *testing.T) {
	err := CheckKeyLengths([][]string{{"a", "b"}, {"x"}})
	require.Error(t, err)
}

func TestFingerprintColumnsFallbackForManyKeys(t *testing.T) {
	cols := make([][]string, 4)
	for i := range cols {
		cols[i] = []string{"v"}
	}
	got := FingerprintColumns(cols)
	assert.Len(t, got, 1)
}
