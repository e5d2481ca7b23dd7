// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package redis wraps the go-redis client which connects to the
// key/value store that is shared by all instances of the application.
// The repository packages, such as the locksrp, use its Client type.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPingTimeout bounds the connection test of NewClient.
const DefaultPingTimeout = 5 * time.Second

// Options contains the connection parameters of a redis server.
type Options struct {
	Address     string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// Client is a pool of connections to a redis server.
// It is safe for concurrent use.
type Client struct {
	*redis.Client
}

// NewClient creates a Client and tests its connection with a PING
// command, bounded by ctx and the DefaultPingTimeout.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	c := redis.NewClient(&redis.Options{
		Addr:        opts.Address,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
	})
	ctx, cancel := context.WithTimeout(ctx, DefaultPingTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("pinging redis at %q: %w", opts.Address, err)
	}
	return &Client{Client: c}, nil
}

// Ping checks if the redis server is reachable, so it can be used by
// the health checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}
