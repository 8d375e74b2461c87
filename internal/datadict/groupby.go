package datadict

import (
	"context"

	"tada/internal/arrok"
	"tada/internal/dtype"
	tadaerr "tada/internal/errors"
	"tada/internal/expr"
	"tada/internal/groupjoin"
	"tada/internal/pool"
)

// Groupby partitions row indices by the fingerprint of the named key
// columns, returning one sub-DataDict per group in first-occurrence
// order (spec §4.4 groupby, §4.5).
func (dd *DataDict) Groupby(keyNames []string) ([]*DataDict, error) {
	groups, err := dd.groupIndices(keyNames)
	if err != nil {
		return nil, err
	}
	out := make([]*DataDict, len(groups))
	for i, g := range groups {
		sub, err := dd.selectRows(g.Indices)
		if err != nil {
			return nil, err
		}
		out[i] = sub
	}
	return out, nil
}

// GroupbyApply fuses index materialization with applying fn to each
// group, returning one row per group (spec §4.4 groupby_apply).
func (dd *DataDict) GroupbyApply(ctx context.Context, keyNames []string, fn ApplyFunc, par bool) (*DataDict, error) {
	groups, err := dd.groupIndices(keyNames)
	if err != nil {
		return nil, err
	}
	jobs := make([]pool.Job, len(groups))
	for i, g := range groups {
		g := g
		jobs[i] = pool.Job{Run: func(context.Context) (any, error) {
			sub, err := dd.selectRows(g.Indices)
			if err != nil {
				return nil, err
			}
			return fn(sub)
		}}
	}
	results, err := pool.Run(ctx, jobs, par)
	if err != nil {
		return nil, err
	}

	var outNames []string
	perColumn := map[string][]arrok.ArrOk{}
	for _, r := range results {
		outs, _ := r.Value.([]*expr.Expr)
		for _, e := range outs {
			evaluated, _, err := e.Eval(nil)
			if err != nil {
				return nil, err
			}
			if evaluated.Kind() != expr.KindArr {
				return nil, tadaerr.New(tadaerr.UnsupportedDtype, "groupby_apply", "func must return single-array expressions")
			}
			name := e.Name()
			if _, ok := perColumn[name]; !ok {
				outNames = append(outNames, name)
			}
			perColumn[name] = append(perColumn[name], evaluated.Arr())
		}
	}
	exprs := make([]*expr.Expr, len(outNames))
	for i, name := range outNames {
		concatenated, err := arrok.SameDtypeConcat1D(perColumn[name])
		if err != nil {
			return nil, err
		}
		exprs[i] = expr.FromArrOk(concatenated, name)
	}
	return New(exprs, outNames)
}

// groupIndices resolves each key column to a hashable string
// representation and delegates to groupjoin.Groupby (spec §4.5).
func (dd *DataDict) groupIndices(keyNames []string) ([]groupjoin.Group, error) {
	cols := make([][]string, len(keyNames))
	for i, name := range keyNames {
		arr, err := dd.ArrOkColumn(name)
		if err != nil {
			return nil, err
		}
		s, err := hashableStrings(arr)
		if err != nil {
			return nil, err
		}
		cols[i] = s
	}
	if len(cols) > 0 {
		n := len(cols[0])
		for _, c := range cols[1:] {
			if len(c) != n {
				return nil, tadaerr.New(tadaerr.KeyMismatch, "groupby", "key columns must share length")
			}
		}
	}
	keys := groupjoin.FingerprintColumns(cols)
	return groupjoin.Groupby(keys, false), nil
}

// hashableStrings renders a column's values into the per-row strings
// groupjoin.Fingerprint hashes, using the dtype's natural string form
// for hashable dtypes and the bit-pattern rendering for floats (spec
// §4.1 "hashable" category excludes floats, but groupby keys on a
// float column are still a practical need; render via FloatKeyString
// so NaN groups with NaN instead of refusing the whole column).
func hashableStrings(a arrok.ArrOk) ([]string, error) {
	if a.Dtype() == dtype.F64 {
		f := a.F64Slice()
		out := make([]string, len(f))
		for i, v := range f {
			out[i] = groupjoin.FloatKeyString(v)
		}
		return out, nil
	}
	if a.Dtype() == dtype.String {
		return append([]string(nil), a.StringSlice()...), nil
	}
	if dtype.IsHashable(a.Dtype()) || dtype.IsInteger(a.Dtype()) {
		casted, err := a.Cast(dtype.String)
		if err != nil {
			return nil, err
		}
		return append([]string(nil), casted.StringSlice()...), nil
	}
	return nil, tadaerr.UnsupportedDtypeErr("groupby", "hashable", a.Dtype())
}

// selectRows builds a sub-DataDict over arbitrary (non-contiguous) row
// indices via arrok.Select with usize indices.
func (dd *DataDict) selectRows(indices []int) (*DataDict, error) {
	idxArr := arrok.FromUSize(arrok.NewOwned(indices))
	names := dd.Columns()
	exprs := make([]*expr.Expr, len(names))
	for i, name := range names {
		col, err := dd.ArrOkColumn(name)
		if err != nil {
			return nil, err
		}
		selected, err := col.Select(idxArr, 0, true)
		if err != nil {
			return nil, err
		}
		exprs[i] = expr.FromArrOk(selected, name)
	}
	return New(exprs, names)
}
