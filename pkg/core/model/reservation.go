// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// Models carry no framework tags. The adapters map them to their own
// structs, e.g., gReservation in the reservationsrp package for GORM
// and the reservation DTO in the reservationsrs package for JSON.
package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Reservation models a committed car reservation. The ID is assigned
// by the repository while UUID is a globally unique external identifier
// which may be shared with other services. Car and user identifiers
// are trusted to reference existing entities because the catalog is
// managed (and validated) elsewhere.
// A reservation is not modified by the admission flow once committed.
type Reservation struct {
	ID        int64     // repository assigned surrogate identifier
	UUID      uuid.UUID // globally unique external identifier
	CarID     int64
	UserID    int64
	StartDate time.Time // inclusive, at midnight UTC
	EndDate   time.Time // inclusive, at midnight UTC
	Status    Status
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Selection returns the (user, car, start date, end date) tuple of
// the r reservation, so it can be compared with a new request.
func (r *Reservation) Selection() Selection {
	return Selection{
		UserID:    r.UserID,
		CarID:     r.CarID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

// Status specifies the reservation status enum. It is (de)serialized
// as an upper-case string, matching with its database representation.
type Status string

// Valid values for the Status enum.
const (
	StatusProcessing Status = "PROCESSING" // payment is in flight
	StatusSuccess    Status = "SUCCESS"    // reserved and paid
	StatusCancelled  Status = "CANCELLED"  // cancelled after success
)

// StatusError indicates an unknown reservation status string.
type StatusError string

// Error implements the error interface, returning a string
// representation of the StatusError.
func (e StatusError) Error() string {
	return fmt.Sprintf("invalid reservation status: %q", string(e))
}

// Validate returns nil if the s Status is one of the known values.
// Otherwise, an instance of StatusError will be returned.
func (s Status) Validate() error {
	switch s {
	case StatusProcessing, StatusSuccess, StatusCancelled:
		return nil
	default:
		return StatusError(s)
	}
}

// These errors are the expected rejection outcomes of the reservation
// admission use case. They are wrapped by cerr errors in order to carry
// their HTTP status codes, hence, callers should use errors.Is in order
// to detect them.
var (
	// ErrDuplicateReservation indicates that an identical reservation
	// already exists. User may choose other dates.
	ErrDuplicateReservation = errors.New("reservation already exists")

	// ErrSlotLocked indicates that another attempt for the same car
	// and dates is in flight. User may retry after a backoff.
	ErrSlotLocked = errors.New("car is locked for reservation")

	// ErrReservationNotFound indicates that a queried reservation
	// does not exist.
	ErrReservationNotFound = errors.New("reservation not found")
)

// PaymentError wraps an error which was reported by the payment
// collaborator during a reservation admission. No reservation is
// persisted when a PaymentError is returned.
type PaymentError struct {
	Err error
}

// Error implements the error interface.
func (e *PaymentError) Error() string {
	return "payment: " + e.Err.Error()
}

// Unwrap returns the wrapped payment collaborator error.
func (e *PaymentError) Unwrap() error {
	return e.Err
}
