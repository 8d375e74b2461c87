package datadict

import (
	"context"

	"github.com/sirupsen/logrus"

	"tada/internal/arrok"
	"tada/internal/config"
	"tada/internal/dtype"
	tadaerr "tada/internal/errors"
	"tada/internal/expr"
	"tada/internal/pool"
	"tada/internal/rolling"
)

// ApplyFunc is a caller-supplied aggregation over one window/group's
// sub-DataDict, returning one Expr per output column (spec §4.4
// rolling_apply/groupby_apply's "func").
type ApplyFunc func(sub *DataDict) ([]*expr.Expr, error)

// RollingApply builds one sub-DataDict per row whose window
// [start_i, i] holds at least minPeriods rows, by slicing every column
// over that window (spec §4.4 rolling_apply); rows with fewer are
// skipped and contribute no output. It evaluates func on each
// sub-DataDict through internal/pool (concurrently when par is set and
// the pool's threshold is reached) and concatenates the per-window
// outputs column-wise back into a single DataDict.
func (dd *DataDict) RollingApply(ctx context.Context, window, minPeriods int, fn ApplyFunc, par bool) (*DataDict, error) {
	n, err := dd.Len()
	if err != nil {
		return nil, err
	}
	starts := make([]int, n)
	for i := range starts {
		starts[i] = rolling.WindowStart(i, window)
	}
	return dd.applyByStarts(ctx, starts, minPeriods, fn, par)
}

// RollingApplyPreset runs RollingApply using a named window/min_periods
// preset resolved from an EngineConfig manifest (SPEC_FULL.md §6
// internal/config), so callers can declare "ts_mean_20d" once instead
// of repeating the same three literals at every call site.
func (dd *DataDict) RollingApplyPreset(ctx context.Context, cfg *config.EngineConfig, presetName string, fn ApplyFunc, par bool) (*DataDict, error) {
	preset, err := cfg.Preset(presetName)
	if err != nil {
		return nil, err
	}
	opt := preset.ToOptions()
	return dd.RollingApply(ctx, opt.Window, opt.MinPeriods, fn, par)
}

// RollingApplyByTime is RollingApply with window starts derived from
// §4.2's time-bucketing instead of a fixed element count (spec §4.4
// rolling_apply_by_time).
func (dd *DataDict) RollingApplyByTime(ctx context.Context, indexCol string, window int64, policy rolling.StartPolicy, fn ApplyFunc, par bool) (*DataDict, error) {
	idxArr, err := dd.ArrOkColumn(indexCol)
	if err != nil {
		return nil, err
	}
	if !dtype.IsTimeRelated(idxArr.Dtype()) {
		return nil, tadaerr.New(tadaerr.UnsupportedDtype, "rolling_apply_by_time", "index column must be datetime or timedelta")
	}
	dtSlice, _ := idxArr.DatetimeOrTimedeltaSlice()
	starts := rolling.StartIndicesByTime(dtSlice, window, policy)
	return dd.applyByStarts(ctx, starts, 1, fn, par)
}

func (dd *DataDict) applyByStarts(ctx context.Context, starts []int, minPeriods int, fn ApplyFunc, par bool) (*DataDict, error) {
	n := len(starts)
	jobs := make([]pool.Job, n)
	for i := 0; i < n; i++ {
		i := i
		jobs[i] = pool.Job{Run: func(context.Context) (any, error) {
			if i-starts[i]+1 < minPeriods {
				return nil, nil
			}
			sub, err := dd.sliceRows(starts[i], i+1)
			if err != nil {
				return nil, err
			}
			outs, err := fn(sub)
			if err != nil {
				return nil, err
			}
			return outs, nil
		}}
	}
	results, err := pool.Run(ctx, jobs, par)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"op":       "rolling_apply",
			"n_starts": n,
			"parallel": par,
		}).WithError(err).Warn("window aggregation fan-out failed; results up to the failing step are discarded")
		return nil, err
	}

	var outNames []string
	perColumn := map[string][]arrok.ArrOk{}
	for _, r := range results {
		outs, _ := r.Value.([]*expr.Expr)
		if outs == nil {
			continue
		}
		for _, e := range outs {
			evaluated, _, err := e.Eval(nil)
			if err != nil {
				return nil, err
			}
			if evaluated.Kind() != expr.KindArr {
				return nil, tadaerr.New(tadaerr.UnsupportedDtype, "rolling_apply", "func must return single-array expressions")
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

// sliceRows builds a sub-DataDict holding rows [lo, hi) of every
// already-evaluated column, via arrok's zero-copy Sub1D view (spec
// §4.4 rolling_apply: "sub-DataDicts formed by slicing each column").
// The sub-DataDict shares dd's name map instead of allocating one per
// window; copy-on-write keeps dd's map intact if func inserts, drops
// or renames columns of the sub-DataDict.
func (dd *DataDict) sliceRows(lo, hi int) (*DataDict, error) {
	names := dd.Columns()
	exprs := make([]*expr.Expr, len(names))
	for i, name := range names {
		col, err := dd.ArrOkColumn(name)
		if err != nil {
			return nil, err
		}
		sliced, err := col.Slice1D(lo, hi)
		if err != nil {
			return nil, err
		}
		exprs[i] = expr.FromArrOk(sliced, name)
	}
	return &DataDict{data: exprs, nameToIdx: dd.nameToIdx}, nil
}
