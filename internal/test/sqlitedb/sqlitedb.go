// Package sqlitedb is an internal helper for the test packages which
// need a relational database but should not depend on a container.
// It opens a temporary SQLite database through the same postgres.Pool
// type which is used in production, so the GORM based repositories
// may be exercised as is.
package sqlitedb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/reservationsrp"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/stretchr/testify/require"
)

// New creates an empty SQLite database in the t.TempDir(), creates
// the reservations table in it, and returns its pool. The pool is
// limited to one open connection since SQLite serializes writers.
func New(t *testing.T) *postgres.Pool {
	t.Helper()
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "crweb.db") +
		"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	pool, err := postgres.NewPoolWithDialector(ctx, sqlite.Open(dsn))
	require.NoError(t, err, "opening sqlite database")
	db, err := pool.DB.DB()
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		require.NoError(t, pool.Close(), "closing sqlite database")
	})
	err = pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return reservationsrp.CreateTable(ctx, c.(*postgres.Conn))
	})
	require.NoError(t, err, "creating the reservations table")
	return pool
}
