package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	kvredis "github.com/momeni/car-rental/pkg/adapter/kv/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	mr.RequireAuth("s3cret")

	_, err := kvredis.NewClient(ctx, kvredis.Options{Address: mr.Addr()})
	assert.Error(t, err, "missing password must fail the ping")

	c, err := kvredis.NewClient(ctx, kvredis.Options{
		Address:  mr.Addr(),
		Password: "s3cret",
	})
	require.NoError(t, err)
	defer c.Close()
	assert.NoError(t, c.Ping(ctx))

	mr.Close()
	assert.Error(t, c.Ping(ctx), "ping must fail when server is down")
}

func TestNewClientUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := kvredis.NewClient(ctx, kvredis.Options{
		Address:     "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	assert.Error(t, err)
}
