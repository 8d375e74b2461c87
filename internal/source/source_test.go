package source

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"tada/internal/dtype"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadColumnsInfersDtypesAndNulls(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `CREATE TABLE prices (id INTEGER, px REAL, symbol TEXT)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO prices VALUES (1, 10.5, 'AAA'), (2, NULL, 'BBB'), (3, 12.25, 'CCC')`)
	require.NoError(t, err)

	dd, err := LoadColumns(ctx, db, `SELECT id, px, symbol FROM prices ORDER BY id`)
	require.NoError(t, err)

	n, err := dd.Len()
	require.NoError(t, err)
	require.Equal(t, 3, n)

	dtypes := dd.Dtypes()
	require.Equal(t, dtype.I64, dtypes["id"])
	require.Equal(t, dtype.OptF64, dtypes["px"], "NULL in px should promote the column to option<f64>")
	require.Equal(t, dtype.String, dtypes["symbol"])
}
