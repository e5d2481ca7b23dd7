// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reservationsuc

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

// DefaultLockTTL is the default expiry of car selection locks. It
// bounds how long a crashed holder can keep a slot unbookable since
// locks are neither renewed nor released by anyone else.
const DefaultLockTTL = 300 * time.Second

const lockKeyPrefix = "car-selection:"

// LockManager serializes concurrent booking attempts of the same car
// selection using short-lived keys in a shared repo.Locks store.
// A key exists while one attempt is in flight. The lock is not owned
// by its acquirer, so any caller may release it.
type LockManager struct {
	store repo.Locks
	ttl   time.Duration
	scope model.LockScope
}

// NewLockManager instantiates a LockManager which creates its keys in
// the store with the ttl expiry. The scope decides whether the user
// identifier takes part in the lock keys.
func NewLockManager(
	store repo.Locks, ttl time.Duration, scope model.LockScope,
) *LockManager {
	return &LockManager{store: store, ttl: ttl, scope: scope}
}

// Key derives the lock key of sel deterministically. For the user
// scope, it has the "car-selection:<user>_<car>_<start>_<end>" format
// while for the slot scope, the user component is replaced by "*".
func (lm *LockManager) Key(sel model.Selection) string {
	user := "*"
	if lm.scope == model.LockScopeUser {
		user = strconv.FormatInt(sel.UserID, 10)
	}
	return fmt.Sprintf(
		"%s%s_%d_%s_%s", lockKeyPrefix, user, sel.CarID,
		model.FormatDate(sel.StartDate), model.FormatDate(sel.EndDate),
	)
}

// TTL returns the expiry duration of the created lock keys.
func (lm *LockManager) TTL() time.Duration {
	return lm.ttl
}

// TryAcquire creates the sel lock key if it is absent. Creation and
// the absence check are performed atomically by the store, so at most
// one of the concurrent callers may obtain true. Failing to acquire
// the lock is reported by false, not an error.
func (lm *LockManager) TryAcquire(
	ctx context.Context, sel model.Selection,
) (bool, error) {
	key := lm.Key(sel)
	ok, err := lm.store.SetNX(ctx, key, lm.ttl)
	if err != nil {
		return false, fmt.Errorf("SetNX(%q): %w", key, err)
	}
	return ok, nil
}

// IsLocked reports if the sel lock key currently exists. It does not
// acquire the lock.
func (lm *LockManager) IsLocked(
	ctx context.Context, sel model.Selection,
) (bool, error) {
	key := lm.Key(sel)
	ok, err := lm.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("Exists(%q): %w", key, err)
	}
	return ok, nil
}

// Release deletes the sel lock key unconditionally. Releasing a lock
// which is not held (or is expired) is a no-op.
func (lm *LockManager) Release(
	ctx context.Context, sel model.Selection,
) error {
	key := lm.Key(sel)
	if err := lm.store.Del(ctx, key); err != nil {
		return fmt.Errorf("Del(%q): %w", key, err)
	}
	return nil
}
