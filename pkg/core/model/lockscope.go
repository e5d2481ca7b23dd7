// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// LockScope specifies which fields of a Selection take part in its
// lock key (and its duplicate detection). Although this enum is
// numeric, it is (de)serialized as a string in the adapter layer.
type LockScope int

// Valid values for the LockScope enum.
const (
	LockScopeInvalid LockScope = iota // zero value is invalid

	// LockScopeUser locks the (user, car, start, end) tuple, so
	// different users never contend on the same key.
	LockScopeUser

	// LockScopeSlot locks the (car, start, end) slot, so any attempt
	// for the same car and dates is serialized, whoever asks for it.
	LockScopeSlot
)

// ErrUnknownLockScope indicates that a given string may not be parsed
// as a known lock scope.
var ErrUnknownLockScope = errors.New("unknown lock scope")

// LockScopeError indicates an invalid lock scope enum value.
type LockScopeError int

// Error implements the error interface.
func (e LockScopeError) Error() string {
	return fmt.Sprintf("invalid lock scope: %d", e)
}

// Validate returns nil if the LockScope value is valid.
func (ls LockScope) Validate() error {
	switch ls {
	case LockScopeUser, LockScopeSlot:
		return nil
	default:
		return LockScopeError(ls)
	}
}

// String converts the LockScope enum to a string.
// Invalid lock scope causes a panic.
func (ls LockScope) String() string {
	switch ls {
	case LockScopeUser:
		return "user"
	case LockScopeSlot:
		return "slot"
	default:
		panic(LockScopeError(ls))
	}
}

// ParseLockScope parses the given string and returns a LockScope.
// For invalid strings, LockScopeInvalid and ErrUnknownLockScope
// will be returned.
func ParseLockScope(s string) (LockScope, error) {
	switch s {
	case "user":
		return LockScopeUser, nil
	case "slot":
		return LockScopeSlot, nil
	default:
		return LockScopeInvalid, ErrUnknownLockScope
	}
}
