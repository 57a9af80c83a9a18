// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stagebook/internal/database"
)

// NewDB returns a migrated and seeded in-memory SQLite database that is
// closed when the test ends.  Every call gets its own database because the
// pool holds a single connection.
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()
	db, err := database.OpenDSN("sqlite", database.SQLiteDSN(":memory:"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, db))
	_, err = database.Seed(ctx, db)
	require.NoError(t, err)
	return db
}
