package reservationsuc_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/momeni/car-rental/internal/test/memlock"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/usecase/reservationsuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseSel = model.Selection{
	UserID:    1,
	CarID:     1,
	StartDate: model.Date(2022, 8, 10),
	EndDate:   model.Date(2022, 8, 15),
}

func TestLockKey(t *testing.T) {
	store := memlock.New()
	user := reservationsuc.NewLockManager(
		store, reservationsuc.DefaultLockTTL, model.LockScopeUser,
	)
	slot := reservationsuc.NewLockManager(
		store, reservationsuc.DefaultLockTTL, model.LockScopeSlot,
	)
	assert.Equal(t, "car-selection:1_1_2022-08-10_2022-08-15", user.Key(baseSel))
	assert.Equal(t, "car-selection:*_1_2022-08-10_2022-08-15", slot.Key(baseSel))

	other := baseSel
	other.UserID = 2
	assert.NotEqual(t, user.Key(baseSel), user.Key(other))
	assert.Equal(t, slot.Key(baseSel), slot.Key(other))
}

func TestLockKeysDifferPerField(t *testing.T) {
	lm := reservationsuc.NewLockManager(
		memlock.New(), reservationsuc.DefaultLockTTL, model.LockScopeUser,
	)
	keys := map[string]string{"base": lm.Key(baseSel)}
	for name, mutate := range map[string]func(s *model.Selection){
		"user":  func(s *model.Selection) { s.UserID++ },
		"car":   func(s *model.Selection) { s.CarID++ },
		"start": func(s *model.Selection) { s.StartDate = s.StartDate.AddDate(0, 0, -1) },
		"end":   func(s *model.Selection) { s.EndDate = s.EndDate.AddDate(0, 0, 1) },
	} {
		sel := baseSel
		mutate(&sel)
		keys[name] = lm.Key(sel)
	}
	seen := make(map[string]string, len(keys))
	for name, key := range keys {
		if prev, ok := seen[key]; ok {
			t.Errorf("%s and %s share the %q lock key", name, prev, key)
		}
		seen[key] = name
	}
}

func TestLockAcquireRelease(t *testing.T) {
	ctx := context.Background()
	store := memlock.New()
	lm := reservationsuc.NewLockManager(
		store, reservationsuc.DefaultLockTTL, model.LockScopeUser,
	)
	assert.Equal(t, 300*time.Second, lm.TTL())

	locked, err := lm.IsLocked(ctx, baseSel)
	require.NoError(t, err)
	assert.False(t, locked)

	ok, err := lm.TryAcquire(ctx, baseSel)
	require.NoError(t, err)
	assert.True(t, ok, "first acquire must win")
	assert.Equal(t, 300*time.Second, store.TTL(lm.Key(baseSel)))

	ok, err = lm.TryAcquire(ctx, baseSel)
	require.NoError(t, err)
	assert.False(t, ok, "second acquire must lose")

	locked, err = lm.IsLocked(ctx, baseSel)
	require.NoError(t, err)
	assert.True(t, locked)

	require.NoError(t, lm.Release(ctx, baseSel))
	require.NoError(t, lm.Release(ctx, baseSel), "release is idempotent")
	locked, err = lm.IsLocked(ctx, baseSel)
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestLockExpiry(t *testing.T) {
	ctx := context.Background()
	store := memlock.New()
	lm := reservationsuc.NewLockManager(
		store, 10*time.Second, model.LockScopeUser,
	)
	ok, err := lm.TryAcquire(ctx, baseSel)
	require.NoError(t, err)
	require.True(t, ok)

	store.Advance(9 * time.Second)
	locked, err := lm.IsLocked(ctx, baseSel)
	require.NoError(t, err)
	assert.True(t, locked, "lock must live until its ttl")

	store.Advance(time.Second)
	locked, err = lm.IsLocked(ctx, baseSel)
	require.NoError(t, err)
	assert.False(t, locked, "lock must expire after its ttl")

	ok, err = lm.TryAcquire(ctx, baseSel)
	require.NoError(t, err)
	assert.True(t, ok, "expired lock may be acquired again")
}

func TestLockStoreErrors(t *testing.T) {
	ctx := context.Background()
	errDown := errors.New("store is down")
	store := memlock.New()
	store.Err = errDown
	lm := reservationsuc.NewLockManager(
		store, reservationsuc.DefaultLockTTL, model.LockScopeUser,
	)
	_, err := lm.TryAcquire(ctx, baseSel)
	assert.ErrorIs(t, err, errDown)
	assert.Contains(t, err.Error(), lm.Key(baseSel))
	_, err = lm.IsLocked(ctx, baseSel)
	assert.ErrorIs(t, err, errDown)
	assert.ErrorIs(t, lm.Release(ctx, baseSel), errDown)
}
