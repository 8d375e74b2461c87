package datadict

import (
	"context"

	"github.com/sirupsen/logrus"

	"tada/internal/arrok"
	"tada/internal/dtype"
	tadaerr "tada/internal/errors"
	"tada/internal/expr"
	"tada/internal/pool"
)

// DataDict is the ordered name→Expr dictionary of spec §3.6: `data` is
// an ordered vector of columns, `nameToIdx` is a copy-on-write index
// kept in sync with it. The copy-on-write discipline mirrors the one
// internal/expr.Context uses for its own column map, so renaming or
// inserting a column never mutates a map another DataDict might still
// be sharing a reference to.
type DataDict struct {
	data      []*expr.Expr
	nameToIdx map[string]int
}

// New constructs a DataDict from expressions plus optional names (spec
// §4.4 construct). When names is shorter than exprs, or a position is
// "", the column receives the expression's own Name() if set, else the
// smallest unused "column_k".
func New(exprs []*expr.Expr, names []string) (*DataDict, error) {
	dd := &DataDict{nameToIdx: map[string]int{}}
	taken := map[string]bool{}
	for i, e := range exprs {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		if name == "" {
			name = e.Name()
		}
		if name == "" {
			name = nextColumnName(taken)
		}
		if taken[name] {
			return nil, tadaerr.New(tadaerr.NameCollision, "new", "duplicate column name \""+name+"\"")
		}
		taken[name] = true
		e.SetName(name)
		dd.nameToIdx[name] = len(dd.data)
		dd.data = append(dd.data, e)
	}
	return dd, nil
}

// Columns returns the current column names in order.
func (dd *DataDict) Columns() []string {
	out := make([]string, len(dd.data))
	for name, idx := range dd.nameToIdx {
		out[idx] = name
	}
	return out
}

// Dtypes returns each column's current dtype, resolved from its
// already-evaluated array (columns with pending steps are skipped,
// since their dtype is not yet known).
func (dd *DataDict) Dtypes() map[string]dtype.Kind {
	out := map[string]dtype.Kind{}
	for name, idx := range dd.nameToIdx {
		e := dd.data[idx]
		if e.Step() != 0 {
			continue
		}
		d, err := e.ViewArr(nil)
		if err != nil || d.Kind() != expr.KindArr {
			continue
		}
		out[name] = d.Arr().Dtype()
	}
	return out
}

// Insert replaces the column named e.Name() if it exists, else
// appends it (spec §4.4 insert).
func (dd *DataDict) Insert(e *expr.Expr) error {
	name := e.Name()
	if name == "" {
		return tadaerr.New(tadaerr.NameCollision, "insert", "cannot insert an unnamed expression")
	}
	if idx, ok := dd.nameToIdx[name]; ok {
		dd.data[idx] = e
		return nil
	}
	dd.copyNameMap()
	dd.nameToIdx[name] = len(dd.data)
	dd.data = append(dd.data, e)
	return nil
}

// Drop removes the columns matched by sel, returning their names (spec
// §4.4 drop). Remaining columns are re-indexed to stay contiguous.
func (dd *DataDict) Drop(sel Selector) ([]string, error) {
	idxs, err := resolveIndices(sel, dd.Columns(), dd.nameToIdx)
	if err != nil {
		return nil, err
	}
	drop := make(map[int]bool, len(idxs))
	for _, i := range idxs {
		drop[i] = true
	}
	var removed []string
	newData := make([]*expr.Expr, 0, len(dd.data))
	newMap := map[string]int{}
	for i, e := range dd.data {
		if drop[i] {
			removed = append(removed, e.Name())
			continue
		}
		newMap[e.Name()] = len(newData)
		newData = append(newData, e)
	}
	dd.data = newData
	dd.nameToIdx = newMap
	return removed, nil
}

// Get resolves sel to the matching expressions, in column order (spec
// §4.4 get/get_mut — Go has no separate mutable-borrow accessor since
// *expr.Expr is already a pointer).
func (dd *DataDict) Get(sel Selector) ([]*expr.Expr, error) {
	idxs, err := resolveIndices(sel, dd.Columns(), dd.nameToIdx)
	if err != nil {
		return nil, err
	}
	out := make([]*expr.Expr, len(idxs))
	for i, idx := range idxs {
		out[i] = dd.data[idx]
	}
	return out, nil
}

// Set writes exprs into the columns matched by sel (spec §4.4 set):
// one write value broadcasts across many selected columns; equal
// counts zip index-for-index; any other length combination fails.
func (dd *DataDict) Set(sel Selector, values []*expr.Expr) error {
	idxs, err := resolveIndices(sel, dd.Columns(), dd.nameToIdx)
	if err != nil {
		return err
	}
	switch {
	case len(values) == 1:
		for _, idx := range idxs {
			v := values[0]
			v.SetName(dd.data[idx].Name())
			dd.data[idx] = v
		}
	case len(values) == len(idxs):
		for k, idx := range idxs {
			values[k].SetName(dd.data[idx].Name())
			dd.data[idx] = values[k]
		}
	default:
		return tadaerr.Newf(tadaerr.ShapeMismatch, "set", "cannot zip %d values into %d selected columns", len(values), len(idxs))
	}
	return nil
}

// copyNameMap gives this DataDict its own name→index map before a
// structural mutation, so a prior Get()'s view of dd.nameToIdx (if any
// external caller retained one) is left untouched — mirrors the
// "removing the old key before inserting the new" atomicity spec §3.6
// requires of renames.
func (dd *DataDict) copyNameMap() {
	fresh := make(map[string]int, len(dd.nameToIdx)+1)
	for k, v := range dd.nameToIdx {
		fresh[k] = v
	}
	dd.nameToIdx = fresh
}

// Eval evaluates the columns matched by sel, one internal/pool job per
// column (spec §4.4 eval). The jobs run concurrently only when par is
// true and there are enough of them to reach the pool's threshold;
// otherwise they run one after another. A column whose
// name changes mid-evaluation has the name map updated atomically
// afterward.
func (dd *DataDict) Eval(ctx context.Context, sel Selector, par bool) error {
	idxs, err := resolveIndices(sel, dd.Columns(), dd.nameToIdx)
	if err != nil {
		return err
	}
	ectx := columnContext(dd)
	jobs := make([]pool.Job, len(idxs))
	for k, idx := range idxs {
		idx := idx
		jobs[k] = pool.Job{Run: func(context.Context) (any, error) {
			before := dd.data[idx].Name()
			_, _, err := dd.data[idx].Eval(ectx)
			return before, err
		}}
	}
	results, err := pool.Run(ctx, jobs, par)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"op":       "eval",
			"columns":  len(idxs),
			"parallel": par,
		}).WithError(err).Warn("column evaluation fan-out failed partway through; dictionary left with a mix of evaluated and pending columns")
		return err
	}
	dd.copyNameMap()
	for k, idx := range idxs {
		oldName := results[k].Value.(string)
		newName := dd.data[idx].Name()
		if newName != oldName {
			delete(dd.nameToIdx, oldName)
			dd.nameToIdx[newName] = idx
		}
	}
	return nil
}

// columnContext snapshots the dictionary's current columns into an
// expr.Context so a column's chain can resolve Data::Context(name)
// leaves against its siblings (spec §4.3.4, used by e.g. "b = a + 1").
func columnContext(dd *DataDict) *expr.Context {
	cols := make(map[string]*expr.Expr, len(dd.data))
	for name, idx := range dd.nameToIdx {
		cols[name] = dd.data[idx]
	}
	return expr.NewContext(cols)
}

// ArrOkColumn is a convenience accessor returning an already-evaluated
// column's concrete array, failing if it still has pending steps.
func (dd *DataDict) ArrOkColumn(name string) (arrok.ArrOk, error) {
	idx, ok := dd.nameToIdx[name]
	if !ok {
		return arrok.ArrOk{}, tadaerr.New(tadaerr.OutOfBounds, "column", "no column named \""+name+"\"")
	}
	d, err := dd.data[idx].ViewArr(nil)
	if err != nil {
		return arrok.ArrOk{}, err
	}
	if d.Kind() != expr.KindArr {
		return arrok.ArrOk{}, tadaerr.New(tadaerr.UnsupportedDtype, "column", "column \""+name+"\" is not a single array")
	}
	return d.Arr(), nil
}

// Len returns the row count, taken from the first evaluated column.
func (dd *DataDict) Len() (int, error) {
	for _, e := range dd.data {
		d, err := e.ViewArr(nil)
		if err != nil {
			continue
		}
		if d.Kind() == expr.KindArr {
			return d.Arr().Len(), nil
		}
	}
	return 0, tadaerr.New(tadaerr.EmptyInput, "len", "no evaluated column to infer length from")
}
