// Package source is the one concrete "external collaborator" the core
// spec describes only as an interface (spec §1 "I/O codecs ... are
// external collaborators"): a database/sql-based loader that hands the
// engine pre-materialized columns. It is deliberately thin — no query
// planning, no schema cache, no codec abstraction — because the core
// packages (arrok, expr, datadict) are the part of this repository
// under specification, not this loader.
//
// Grounded on sentra's internal/database package, which wraps
// database/sql the same way: open a *sql.DB for a named driver, run a
// query, and hand rows to a caller-supplied materializer rather than
// owning a query builder itself.
package source

import (
	"context"
	"database/sql"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tada/internal/arrok"
	"tada/internal/datadict"
	"tada/internal/dtype"
	tadaerr "tada/internal/errors"
	"tada/internal/expr"
)

// LoadColumns runs query against db and materializes the result set as
// a *datadict.DataDict: one ArrOk column per result column, dtype
// inferred from all the values database/sql returns for that column
// (see columnToArrOk; a column mixing value types becomes string).
// NULLs fold an int64, float64 or bool column into the matching
// option<T> dtype (spec §3.1); in a time column a NULL becomes tick 0,
// and in a string column it becomes "".
//
// This is the "view-on-base" producer spec §1/§3.2 calls out: the
// engine treats whatever this function hands it as pre-materialized,
// owned storage — there is no lazy cursor kept open past this call.
func LoadColumns(ctx context.Context, db *sql.DB, query string) (*datadict.DataDict, error) {
	loadID := uuid.New()
	log := logrus.WithFields(logrus.Fields{"op": "source.LoadColumns", "load_id": loadID.String()})

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		log.WithError(err).Warn("query failed")
		return nil, tadaerr.Wrap(tadaerr.CastFailure, "source.LoadColumns", err, "running query")
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, tadaerr.Wrap(tadaerr.CastFailure, "source.LoadColumns", err, "reading column names")
	}

	raw := make([][]any, len(cols))
	scanTargets := make([]any, len(cols))
	for i := range scanTargets {
		var v any
		scanTargets[i] = &v
	}

	nrows := 0
	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, tadaerr.Wrap(tadaerr.CastFailure, "source.LoadColumns", err, "scanning row")
		}
		for i, t := range scanTargets {
			raw[i] = append(raw[i], *(t.(*any)))
		}
		nrows++
	}
	if err := rows.Err(); err != nil {
		return nil, tadaerr.Wrap(tadaerr.CastFailure, "source.LoadColumns", err, "iterating rows")
	}

	exprs := make([]*expr.Expr, len(cols))
	for i, name := range cols {
		a, err := columnToArrOk(raw[i])
		if err != nil {
			return nil, err
		}
		exprs[i] = expr.FromArrOk(a, name)
	}

	log.WithFields(logrus.Fields{
		"rows":    humanize.Comma(int64(nrows)),
		"columns": len(cols),
	}).Info("loaded result set")

	return datadict.New(exprs, cols)
}

// columnToArrOk inspects a column's driver-returned values and boxes
// them into the narrowest matching ArrOk dtype: all-int64 → i64 (or
// option<i64> if any NULL), all-float64 → f64 (or option<f64>),
// all-bool → bool (or option<bool>), time.Time → datetime[ns], anything
// else (string/[]byte, or a mixed column) → string.
func columnToArrOk(vals []any) (arrok.ArrOk, error) {
	hasNull := false
	allInt, allFloat, allBool, allTime := true, true, true, true
	for _, v := range vals {
		switch v.(type) {
		case nil:
			hasNull = true
			continue
		case int64:
			allFloat, allBool, allTime = false, false, false
		case float64:
			allInt, allBool, allTime = false, false, false
		case bool:
			allInt, allFloat, allTime = false, false, false
		case time.Time:
			allInt, allFloat, allBool = false, false, false
		default:
			allInt, allFloat, allBool, allTime = false, false, false, false
		}
	}
	switch {
	case allTime && containsNonNil(vals):
		return timeColumn(vals), nil
	case allBool && containsNonNil(vals):
		return boolColumn(vals, hasNull), nil
	case allInt && containsNonNil(vals):
		return intColumn(vals, hasNull), nil
	case allFloat && containsNonNil(vals):
		return floatColumn(vals, hasNull), nil
	default:
		return stringColumn(vals), nil
	}
}

func containsNonNil(vals []any) bool {
	for _, v := range vals {
		if v != nil {
			return true
		}
	}
	return false
}

func intColumn(vals []any, hasNull bool) arrok.ArrOk {
	if !hasNull {
		out := make([]int64, len(vals))
		for i, v := range vals {
			out[i] = v.(int64)
		}
		return arrok.FromI64(arrok.NewOwned(out))
	}
	out := make([]arrok.OptI64, len(vals))
	for i, v := range vals {
		if v == nil {
			out[i] = arrok.NoneI64()
			continue
		}
		out[i] = arrok.SomeI64(v.(int64))
	}
	return arrok.FromOptI64(arrok.NewOwned(out))
}

func floatColumn(vals []any, hasNull bool) arrok.ArrOk {
	if !hasNull {
		out := make([]float64, len(vals))
		for i, v := range vals {
			out[i] = toFloat(v)
		}
		return arrok.FromF64(arrok.NewOwned(out))
	}
	out := make([]arrok.OptF64, len(vals))
	for i, v := range vals {
		if v == nil {
			out[i] = arrok.NoneF64()
			continue
		}
		out[i] = arrok.SomeF64(toFloat(v))
	}
	return arrok.FromOptF64(arrok.NewOwned(out))
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

func boolColumn(vals []any, hasNull bool) arrok.ArrOk {
	if !hasNull {
		out := make([]bool, len(vals))
		for i, v := range vals {
			out[i] = v.(bool)
		}
		return arrok.FromBool(arrok.NewOwned(out))
	}
	out := make([]arrok.OptBool, len(vals))
	for i, v := range vals {
		if v == nil {
			out[i] = arrok.NoneBool()
			continue
		}
		out[i] = arrok.SomeBool(v.(bool))
	}
	return arrok.FromOptBool(arrok.NewOwned(out))
}

func timeColumn(vals []any) arrok.ArrOk {
	out := make([]int64, len(vals))
	for i, v := range vals {
		if v == nil {
			out[i] = 0
			continue
		}
		out[i] = v.(time.Time).UnixNano()
	}
	return arrok.FromDatetime(dtype.DatetimeNs, arrok.NewOwned(out))
}

func stringColumn(vals []any) arrok.ArrOk {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = stringify(v)
	}
	return arrok.FromString(arrok.NewOwned(out))
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(s)
	case string:
		return s
	default:
		return ""
	}
}
