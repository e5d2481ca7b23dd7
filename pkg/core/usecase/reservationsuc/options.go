// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reservationsuc

import (
	"errors"
	"fmt"
	"time"

	"github.com/momeni/car-rental/pkg/core/model"
)

// Option is a functional option for the reservations use case.
type Option func(uc *UseCase) error

// WithLockTTL option configures the expiry of car selection locks.
// A crashed request keeps its slot locked for at most this duration.
// This option may be passed to the New() function.
func WithLockTTL(ttl time.Duration) Option {
	return func(uc *UseCase) error {
		if d := int64(ttl); d <= 0 {
			return fmt.Errorf("lock ttl (%d) is not positive", d)
		}
		if uc.lockTTL != 0 {
			return errors.New("lock ttl is already configured")
		}
		uc.lockTTL = ttl
		return nil
	}
}

// WithLockScope option chooses whether the user identifier takes part
// in the lock keys and duplicate checks (see model.LockScope).
// This option may be passed to the New() function.
func WithLockScope(scope model.LockScope) Option {
	return func(uc *UseCase) error {
		if err := scope.Validate(); err != nil {
			return err
		}
		if uc.lockScope != model.LockScopeInvalid {
			return errors.New("lock scope is already configured")
		}
		uc.lockScope = scope
		return nil
	}
}
