// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the crweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations are passed to their
// ultimate components as a series of individual params (for the
// mandatory items) and a series of functional options (for the
// optional items), so they are validated again by the end-component
// such as a UseCase instance.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	kvredis "github.com/momeni/car-rental/pkg/adapter/kv/redis"
	"github.com/momeni/car-rental/pkg/adapter/payment/simpay"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/reservationsuc"
	"gopkg.in/yaml.v3"
)

// These environment variables override the passwords of the loaded
// configuration file, so secrets may be kept out of it.
const (
	EnvDatabasePassword = "CRWEB_DB_PASSWORD"
	EnvRedisPassword    = "CRWEB_REDIS_PASSWORD"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is implemented
// with primitive fields or other structs which are defined locally,
// not models or structs which are defined in lower layers, so the
// configuration format can be kept intact while other layers change.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Redis    Redis    // Lock store connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Logging  Logging  // Structured logging settings
	Usecases Usecases // Supported use cases configuration settings
}

// Load reads the path configuration file and parses it using the
// Parse function.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return c, nil
}

// Parse unmarshals the data byte slice as a Config instance. Extra
// items in the data cause an error and missing items will take their
// default values. Passwords are overridden by the EnvDatabasePassword
// and EnvRedisPassword environment variables (if they are set).
// Thereafter, the Config will be validated and normalized in order to
// ensure that provided settings are acceptable.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	switch err := dec.Decode(c); {
	case errors.Is(err, io.EOF):
		return nil, errors.New("empty configuration")
	case err != nil:
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if pass, ok := os.LookupEnv(EnvDatabasePassword); ok {
		c.Database.Password = pass
	}
	if pass, ok := os.LookupEnv(EnvRedisPassword); ok {
		c.Redis.Password = pass
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the settings of c and fills the
// missing items with their default values.
func (c *Config) ValidateAndNormalize() error {
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	if err := c.Redis.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating redis settings: %w", err)
	}
	if err := c.Gin.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating gin settings: %w", err)
	}
	if err := c.Logging.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating logging settings: %w", err)
	}
	err := c.Usecases.Reservations.ValidateAndNormalize()
	if err != nil {
		return fmt.Errorf("validating reservations settings: %w", err)
	}
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the c settings.
func (c *Config) ConnectionPool(ctx context.Context) (*postgres.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return nil, fmt.Errorf(
			"%s.ConnectionPool: %w", c.Database.String(), err,
		)
	}
	return p, nil
}

// RedisClient connects to the lock store redis server.
func (c *Config) RedisClient(ctx context.Context) (*kvredis.Client, error) {
	return c.Redis.NewClient(ctx)
}

// NewPayer instantiates the simulated payment gateway.
func (c *Config) NewPayer() (*simpay.Gateway, error) {
	return c.Usecases.Reservations.NewPayer()
}

// NewReservationsUseCase instantiates a new reservations use case
// based on the settings in the c struct.
func (c *Config) NewReservationsUseCase(
	p repo.Pool,
	r repo.Reservations,
	l repo.Locks,
	payer reservationsuc.Payer,
) (*reservationsuc.UseCase, error) {
	return c.Usecases.Reservations.NewUseCase(p, r, l, payer)
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Reservations Reservations // reservations use cases related settings
}

// Marshal serializes c as yaml, so the effective settings may be
// reviewed after their normalization. Passwords are masked.
func (c *Config) Marshal() ([]byte, error) {
	cc := *c
	if cc.Database.Password != "" {
		cc.Database.Password = maskedPassword
	}
	if cc.Redis.Password != "" {
		cc.Redis.Password = maskedPassword
	}
	return yaml.Marshal(&cc)
}

const maskedPassword = "****"
