// Package datadict implements the named-column data dictionary (spec
// §3.6): an ordered vector of Expr columns plus a copy-on-write
// name→index map, with selector-based get/set/drop, parallel
// evaluation, rolling-window application, and groupby dispatch.
package datadict

import (
	"regexp"
	"strconv"
	"strings"

	tadaerr "tada/internal/errors"
)

// SelectorKind tags which grammar form a Selector uses (spec §3.7).
type SelectorKind uint8

const (
	SelAll SelectorKind = iota
	SelIndex
	SelName
	SelRegex
	SelVecIndex
	SelVecName
)

// Selector is one column-selection expression (spec §3.7, §6.4): All,
// a single (possibly negative) index, a single name (auto-promoted to
// SelRegex when it looks like `^…$`), a regex pattern, or a list of
// indices/names.
type Selector struct {
	kind    SelectorKind
	index   int32
	name    string
	indices []int32
	names   []string
}

func All() Selector { return Selector{kind: SelAll} }

func Index(i int32) Selector { return Selector{kind: SelIndex, index: i} }

// Name builds a name selector, auto-promoting to a regex selector when
// name starts with `^` and ends with `$` (spec §3.7).
func Name(name string) Selector {
	if isRegexLiteral(name) {
		return Selector{kind: SelRegex, name: name}
	}
	return Selector{kind: SelName, name: name}
}

func Regex(pattern string) Selector { return Selector{kind: SelRegex, name: pattern} }

func VecIndex(idx []int32) Selector { return Selector{kind: SelVecIndex, indices: idx} }

func VecName(names []string) Selector { return Selector{kind: SelVecName, names: names} }

func isRegexLiteral(s string) bool {
	return strings.HasPrefix(s, "^") && strings.HasSuffix(s, "$") && len(s) >= 2
}

// resolveIndices maps a Selector to concrete column indices against
// the current ordered name list (spec §3.7/§6.4). Negative indices
// wrap from the end.
func resolveIndices(sel Selector, names []string, nameToIdx map[string]int) ([]int, error) {
	switch sel.kind {
	case SelAll:
		out := make([]int, len(names))
		for i := range out {
			out[i] = i
		}
		return out, nil
	case SelIndex:
		i, err := wrapIndex(sel.index, len(names))
		if err != nil {
			return nil, err
		}
		return []int{i}, nil
	case SelName:
		i, ok := nameToIdx[sel.name]
		if !ok {
			return nil, tadaerr.New(tadaerr.OutOfBounds, "select", "no column named \""+sel.name+"\"")
		}
		return []int{i}, nil
	case SelRegex:
		re, err := regexp.Compile(sel.name)
		if err != nil {
			return nil, tadaerr.Wrap(tadaerr.RegexInvalid, "select", err, "invalid selector pattern \""+sel.name+"\"")
		}
		var out []int
		for i, n := range names {
			if re.MatchString(n) {
				out = append(out, i)
			}
		}
		return out, nil
	case SelVecIndex:
		out := make([]int, len(sel.indices))
		for k, idx := range sel.indices {
			i, err := wrapIndex(idx, len(names))
			if err != nil {
				return nil, err
			}
			out[k] = i
		}
		return out, nil
	case SelVecName:
		out := make([]int, len(sel.names))
		for k, n := range sel.names {
			i, ok := nameToIdx[n]
			if !ok {
				return nil, tadaerr.New(tadaerr.OutOfBounds, "select", "no column named \""+n+"\"")
			}
			out[k] = i
		}
		return out, nil
	}
	panic("datadict: unreachable selector kind")
}

func wrapIndex(i int32, n int) (int, error) {
	r := int(i)
	if r < 0 {
		r += n
	}
	if r < 0 || r >= n {
		return 0, tadaerr.Newf(tadaerr.OutOfBounds, "select", "index %d out of bounds for %d columns", i, n)
	}
	return r, nil
}

// nextColumnName returns "column_k" for the smallest unused k (spec
// §4.4 construct: "unnamed columns receive column_k names").
func nextColumnName(taken map[string]bool) string {
	k := 0
	for {
		candidate := "column_" + strconv.Itoa(k)
		if !taken[candidate] {
			return candidate
		}
		k++
	}
}
