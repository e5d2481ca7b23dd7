// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the car
// rental web project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database bootstrapping actions.
//
//	./crweb [-c /path/of/main/config.yaml]           # start web server
//	./crweb db init [-c /path/of/main/config.yaml]
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momeni/car-rental/pkg/adapter/config"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/reservationsrp"
	"github.com/momeni/car-rental/pkg/adapter/kv/redis/locksrp"
	"github.com/momeni/car-rental/pkg/adapter/metrics"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/healthrs"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/routes"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/spf13/cobra"
)

// shutdownTimeout bounds the graceful shutdown of the web server.
const shutdownTimeout = 10 * time.Second

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "crweb",
	Short: "A car rental reservation web service",
	Long: `A car rental reservation web service which lets customers
reserve a car for an inclusive date range.
Concurrent requests for the same car and dates are serialized by
an expiring lock in a shared redis server, so each selection is
admitted at most once, while the reservations are persisted in a
PostgreSQL database.`,
	RunE: startWebServer,
	Args: cobra.NoArgs,
}

func startWebServer(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		cmd.Context(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	l, err := c.Logging.Setup(os.Stderr)
	if err != nil {
		return fmt.Errorf("setting up logger: %w", err)
	}
	log.Info(ctx, "configs are loaded",
		slog.String("path", cfgPath),
		slog.String("database", c.Database.String()),
		slog.String("redis", c.Redis.Address),
	)
	if out, err := c.Marshal(); err != nil {
		log.Warn(ctx, "cannot marshal the effective configs",
			log.Err("err", err),
		)
	} else {
		log.Debug(ctx, "effective configs", slog.String("yaml", string(out)))
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	rc, err := c.RedisClient(ctx)
	if err != nil {
		return fmt.Errorf("creating redis client: %w", err)
	}
	defer rc.Close()
	payer, err := c.NewPayer()
	if err != nil {
		return fmt.Errorf("creating payment gateway: %w", err)
	}
	uc, err := c.NewReservationsUseCase(
		p, reservationsrp.New(), locksrp.New(rc), payer,
	)
	if err != nil {
		return fmt.Errorf("creating reservations use case: %w", err)
	}
	e := c.Gin.NewEngine(l)
	err = routes.Register(e, uc, metrics.New(metrics.DefaultNamespace),
		map[string]healthrs.Checker{
			"database": p,
			"redis":    rc,
		},
	)
	if err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	return serve(ctx, &http.Server{
		Addr:              c.Gin.Address,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	})
}

// serve runs srv until ctx is done and then shuts it down gracefully,
// so the in-flight reservations may release their locks.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return fmt.Errorf("running web server: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down")
	ctx, cancel := context.WithTimeout(
		context.WithoutCancel(ctx), shutdownTimeout,
	)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down web server: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("running web server: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		cfgPath = "configs/sample-config.yaml"
	}
}
