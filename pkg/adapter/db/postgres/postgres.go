// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres realizes the repo.Pool, repo.Conn, and repo.Tx
// interfaces using GORM. The repository packages, such as the
// reservationsrp, assert that their connections and transactions are
// created by this package, so they may use GORM query builders.
// Connection strings may be built by the DSN function.
package postgres

import (
	"fmt"
	"net/url"
)

// DSN builds a PostgreSQL connection URL. An empty password is
// omitted, so the server may authenticate the user otherwise (e.g.,
// using a .pgpass file).
func DSN(host string, port int, dbName, user, pass, sslMode string) string {
	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", host, port),
		Path:   "/" + dbName,
	}
	if pass != "" {
		u.User = url.UserPassword(user, pass)
	} else {
		u.User = url.User(user)
	}
	if sslMode != "" {
		u.RawQuery = url.Values{"sslmode": {sslMode}}.Encode()
	}
	return u.String()
}
