package locksrp_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	kvredis "github.com/momeni/car-rental/pkg/adapter/kv/redis"
	"github.com/momeni/car-rental/pkg/adapter/kv/redis/locksrp"
	"github.com/stretchr/testify/suite"
)

type LocksRepoTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Mini *miniredis.Miniredis
	Repo *locksrp.Repo
}

func TestLocksRepoTestSuite(t *testing.T) {
	suite.Run(t, &LocksRepoTestSuite{Ctx: context.Background()})
}

func (lts *LocksRepoTestSuite) SetupTest() {
	lts.Mini = miniredis.NewMiniRedis()
	lts.Require().NoError(lts.Mini.Start(), "starting miniredis")
	c, err := kvredis.NewClient(lts.Ctx, kvredis.Options{
		Address: lts.Mini.Addr(),
	})
	lts.Require().NoError(err, "connecting to miniredis")
	lts.Repo = locksrp.New(c)
	lts.T().Cleanup(func() {
		_ = c.Close()
		lts.Mini.Close()
	})
}

func (lts *LocksRepoTestSuite) TestSetNXOnce() {
	key := "car-selection:1_2_2022-08-10_2022-08-15"
	ok, err := lts.Repo.SetNX(lts.Ctx, key, 300*time.Second)
	lts.Require().NoError(err)
	lts.True(ok, "first SetNX must create the key")

	ok, err = lts.Repo.SetNX(lts.Ctx, key, 300*time.Second)
	lts.Require().NoError(err)
	lts.False(ok, "second SetNX must not overwrite the key")

	v, err := lts.Mini.Get(key)
	lts.Require().NoError(err)
	lts.Equal("1", v)
	lts.Equal(300*time.Second, lts.Mini.TTL(key))
}

func (lts *LocksRepoTestSuite) TestExistsAndDel() {
	key := "car-selection:3_4_2022-09-01_2022-09-02"
	found, err := lts.Repo.Exists(lts.Ctx, key)
	lts.Require().NoError(err)
	lts.False(found)

	_, err = lts.Repo.SetNX(lts.Ctx, key, time.Minute)
	lts.Require().NoError(err)
	found, err = lts.Repo.Exists(lts.Ctx, key)
	lts.Require().NoError(err)
	lts.True(found)

	lts.Require().NoError(lts.Repo.Del(lts.Ctx, key))
	lts.False(lts.Mini.Exists(key))
	lts.NoError(lts.Repo.Del(lts.Ctx, key), "Del must be idempotent")
}

func (lts *LocksRepoTestSuite) TestExpiry() {
	key := "car-selection:5_6_2022-10-01_2022-10-03"
	ok, err := lts.Repo.SetNX(lts.Ctx, key, 300*time.Second)
	lts.Require().NoError(err)
	lts.Require().True(ok)

	lts.Mini.FastForward(299 * time.Second)
	found, err := lts.Repo.Exists(lts.Ctx, key)
	lts.Require().NoError(err)
	lts.True(found, "key must live until its ttl")

	lts.Mini.FastForward(time.Second)
	found, err = lts.Repo.Exists(lts.Ctx, key)
	lts.Require().NoError(err)
	lts.False(found, "key must expire after its ttl")

	ok, err = lts.Repo.SetNX(lts.Ctx, key, 300*time.Second)
	lts.Require().NoError(err)
	lts.True(ok, "expired key may be acquired again")
}

func (lts *LocksRepoTestSuite) TestUnavailable() {
	lts.Mini.SetError("ERR lock store is unavailable")
	_, err := lts.Repo.SetNX(lts.Ctx, "k", time.Second)
	lts.Error(err)
	_, err = lts.Repo.Exists(lts.Ctx, "k")
	lts.Error(err)
	lts.Error(lts.Repo.Del(lts.Ctx, "k"))
	lts.Mini.SetError("")
}
