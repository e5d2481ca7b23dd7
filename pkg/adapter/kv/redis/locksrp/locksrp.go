// Package locksrp implements the repo.Locks interface over a redis
// server. Keys are created with the SET NX EX command, so creation and
// expiry are set atomically, and their values are a "1" sentinel.
package locksrp

import (
	"context"
	"errors"
	"time"

	kvredis "github.com/momeni/car-rental/pkg/adapter/kv/redis"
	"github.com/redis/go-redis/v9"
)

const sentinel = "1"

type Repo struct {
	c *kvredis.Client
}

func New(c *kvredis.Client) *Repo {
	return &Repo{c: c}
}

func (lr *Repo) SetNX(
	ctx context.Context, key string, ttl time.Duration,
) (bool, error) {
	return lr.c.SetNX(ctx, key, sentinel, ttl).Result()
}

func (lr *Repo) Exists(ctx context.Context, key string) (bool, error) {
	err := lr.c.Get(ctx, key).Err()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

func (lr *Repo) Del(ctx context.Context, key string) error {
	return lr.c.Del(ctx, key).Err()
}
