// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
)

// Database contains the PostgreSQL connection settings.
type Database struct {
	Host     string // domain name or IP address of the DBMS server
	Port     int    // port number of the DBMS server
	Name     string // database name, like crweb
	User     string // role name for connecting to the database
	Password string `yaml:",omitempty"` // see EnvDatabasePassword

	// SSLMode is passed as the sslmode connection parameter, like
	// disable, require, or verify-full. Empty value keeps the libpq
	// default.
	SSLMode string `yaml:"ssl-mode,omitempty"`
}

// ValidateAndNormalize fills the Port with 5432 if it is missing and
// ensures that the host, database name, and user are given.
func (d *Database) ValidateAndNormalize() error {
	if d.Port == 0 {
		d.Port = 5432
	}
	switch {
	case d.Host == "":
		return errors.New("host is required")
	case d.Name == "":
		return errors.New("name is required")
	case d.User == "":
		return errors.New("user is required")
	case d.Port < 0 || d.Port > 65535:
		return fmt.Errorf("port (%d) is out of range", d.Port)
	}
	switch d.SSLMode {
	case "", "disable", "allow", "prefer", "require",
		"verify-ca", "verify-full":
	default:
		return fmt.Errorf("unsupported ssl-mode: %q", d.SSLMode)
	}
	return nil
}

// ConnectionURL returns the connection string of d.
func (d Database) ConnectionURL() string {
	return postgres.DSN(
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// ConnectionPool creates a connection pool for d database.
func (d Database) ConnectionPool(ctx context.Context) (*postgres.Pool, error) {
	return postgres.NewPool(ctx, d.ConnectionURL())
}

// String describes d without its password, so it may be logged.
func (d Database) String() string {
	return fmt.Sprintf("Database{%s@%s:%d/%s}", d.User, d.Host, d.Port, d.Name)
}
