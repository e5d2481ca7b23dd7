// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"
	"time"
)

// Locks is a key/value store with expiring keys which is shared by all
// instances of the application. Keys are opaque strings and only their
// existence is meaningful. Implementations must be safe for concurrent
// use.
type Locks interface {
	// SetNX creates the key with the given ttl if and only if it does
	// not exist, atomically. It returns true if the key was created.
	SetNX(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Exists reports if the key exists (and is not expired yet).
	Exists(ctx context.Context, key string) (bool, error)

	// Del removes the key. Removing a missing key is not an error.
	Del(ctx context.Context, key string) error
}
