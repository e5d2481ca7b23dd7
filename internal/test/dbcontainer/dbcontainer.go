// Copyright (c) 2023 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbcontainer is an internal helper for the test packages.
// It starts a temporary postgres:16 podman container, connects to it
// using a *postgres.Pool, and creates the reservations table, so the
// integration-level test suites may run against a real PostgreSQL.
// The container is skipped in the -short mode.
package dbcontainer

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/reservationsrp"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/stretchr/testify/require"
)

// New creates and starts up a postgres podman container, waits for it
// to accept connections, and creates the reservations table in it.
// The podman.service needs to be started and the DOCKER_HOST
// environment variable needs to be initialized beforehand like
// DOCKER_HOST=unix://$XDG_RUNTIME_DIR/podman/podman.sock
// in order to be identified by this function properly.
// The timeout is only considered during the start up phase. The pool
// is closed and the container is shut down by the t.Cleanup.
func New(ctx context.Context, t *testing.T, timeout time.Duration) *postgres.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container in the short mode")
	}
	ctx2, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	pg, err := sqltestutil.StartPostgresContainer(ctx2, "16")
	require.NoError(t, err, "failed to set up a test database")
	t.Cleanup(func() {
		err := pg.Shutdown(ctx)
		require.NoError(t, err, "failed to shutdown test database")
	})
	var pool *postgres.Pool
	u := pg.ConnectionString()
	for pool == nil {
		pool, err = postgres.NewPool(ctx2, u)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.SQLState() == "57P03" {
			continue // the database system is starting up
		}
		var netErr net.Error
		if ctx2.Err() == nil && errors.As(err, &netErr) {
			continue // tolerate network errors until a timeout
		}
		require.NoError(t, err, "cannot connect to test database")
	}
	t.Cleanup(func() {
		require.NoError(t, pool.Close(), "closing the connections pool")
	})
	err = pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return reservationsrp.CreateTable(ctx, c.(*postgres.Conn))
	})
	require.NoError(t, err, "creating the reservations table")
	return pool
}
