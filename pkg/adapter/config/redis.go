package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/momeni/car-rental/pkg/adapter/config/settings"
	kvredis "github.com/momeni/car-rental/pkg/adapter/kv/redis"
)

// Redis contains the connection settings of the lock store.
type Redis struct {
	Address  string // host:port of the redis server
	Password string `yaml:",omitempty"` // see EnvRedisPassword
	DB       int    `yaml:",omitempty"` // logical database number

	// DialTimeout bounds the establishment of new connections.
	// A nil value keeps the go-redis default.
	DialTimeout *settings.Duration `yaml:"dial-timeout,omitempty"`
}

func (r *Redis) ValidateAndNormalize() error {
	if r.Address == "" {
		return errors.New("address is required")
	}
	if r.DB < 0 {
		return fmt.Errorf("db (%d) is negative", r.DB)
	}
	if r.DialTimeout != nil && *r.DialTimeout <= 0 {
		return fmt.Errorf("dial-timeout (%v) is not positive",
			time.Duration(*r.DialTimeout),
		)
	}
	return nil
}

// NewClient connects to the r redis server.
func (r Redis) NewClient(ctx context.Context) (*kvredis.Client, error) {
	opts := kvredis.Options{
		Address:  r.Address,
		Password: r.Password,
		DB:       r.DB,
	}
	if r.DialTimeout != nil {
		opts.DialTimeout = time.Duration(*r.DialTimeout)
	}
	return kvredis.NewClient(ctx, opts)
}
