// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/car-rental/pkg/adapter/config"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/reservationsrp"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For a fresh installation, the init sub-command creates the tables.`,
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database tables",
	Long: `Create the reservations table and its indices in the database
which is specified in the configuration file, if they do not exist.
No changes will be made to the config file itself.`,
	RunE: initDB,
	Args: cobra.NoArgs,
}

func initDB(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	if _, err := c.Logging.Setup(cmd.ErrOrStderr()); err != nil {
		return fmt.Errorf("setting up logger: %w", err)
	}
	ctx := cmd.Context()
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return reservationsrp.CreateTable(ctx, tx.(*postgres.Tx))
		})
	})
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	log.Info(ctx, "database tables are created")
	return nil
}

func init() {
	dbCmd.AddCommand(dbInitCmd)
	rootCmd.AddCommand(dbCmd)
}
