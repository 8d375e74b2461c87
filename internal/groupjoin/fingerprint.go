// Package groupjoin implements spec §4.5's key fingerprinting, groupby
// partitioning, and left/outer hash joins. Fingerprinting uses a
// fixed-seed xxhash (the teacher's module registry and the rest of the
// example pack reach for github.com/cespare/xxhash for exactly this
// "hash a composite key fast" role), so that repeated runs over the
// same data always partition identically.
package groupjoin

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// fingerprintSeed fixes the hash's starting state so that fingerprints
// are reproducible across runs and processes (spec §4.5: "a
// fixed-seed hasher").
const fingerprintSeed uint64 = 0x74616461 // "tada" as the seed, not a cryptographic constant

// Fingerprint combines one row's key values, taken as strings already
// normalized by the caller (see FingerprintColumns), into a single
// 64-bit hash. All keys are written in order, each followed by a zero
// byte, into one seeded digest, so the result is order-sensitive (spec
// §4.5).
func Fingerprint(keys ...string) uint64 {
	d := xxhash.NewWithSeed(fingerprintSeed)
	for _, k := range keys {
		_, _ = d.WriteString(k)
		_, _ = d.Write([]byte{0}) // separator so "ab","c" != "a","bc"
	}
	return d.Sum64()
}

// FingerprintColumns computes one fingerprint per row across a set of
// equal-length key columns, each given as its row values pre-rendered
// to a hashable string (int/string/bool keys are rendered verbatim;
// floats are rendered via their bit pattern so NaN hashes consistently
// with itself). Fast paths for k ∈ {1,2,3} avoid the generic
// multi-column fold's per-row []string allocation; they still hash each
// column's rendered string in turn rather than combining the row's
// typed values into one pre-hash buffer, so they save the allocation
// spec §4.5 calls out, not the rehash itself.
func FingerprintColumns(cols [][]string) []uint64 {
	if len(cols) == 0 {
		return nil
	}
	n := len(cols[0])
	out := make([]uint64, n)
	switch len(cols) {
	case 1:
		c0 := cols[0]
		for i := 0; i < n; i++ {
			out[i] = Fingerprint(c0[i])
		}
	case 2:
		c0, c1 := cols[0], cols[1]
		for i := 0; i < n; i++ {
			out[i] = Fingerprint(c0[i], c1[i])
		}
	case 3:
		c0, c1, c2 := cols[0], cols[1], cols[2]
		for i := 0; i < n; i++ {
			out[i] = Fingerprint(c0[i], c1[i], c2[i])
		}
	default:
		for i := 0; i < n; i++ {
			row := make([]string, len(cols))
			for k, c := range cols {
				row[k] = c[i]
			}
			out[i] = Fingerprint(row...)
		}
	}
	return out
}

// FloatKeyString renders a float64 key value to a hash-stable string
// via its raw bits, so NaN (which never compares equal to itself)
// still groups with other NaNs the way pandas' groupby treats missing
// keys as their own group.
func FloatKeyString(v float64) string {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
	return string(buf)
}
