package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/bikeshare-eda/internal/database/dbtest"
)

func TestOpenIsReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bike.db")
	dbtest.Create(t, path, `CREATE TABLE bike (count INTEGER)`, `INSERT INTO bike VALUES (16)`)

	ctx := context.Background()
	db, err := Open(ctx, Config{Path: path})
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT count FROM bike`).Scan(&n))
	assert.Equal(t, 16, n)

	_, err = db.ExecContext(ctx, `INSERT INTO bike VALUES (1)`)
	assert.Error(t, err)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(context.Background(), Config{Path: filepath.Join(t.TempDir(), "none.db")})
	assert.Error(t, err)
}
