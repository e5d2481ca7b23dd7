// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/car-rental/pkg/core/model"
)

// ReservationsConnQueryer lists the reservations queries which may run
// on a plain connection. They are read-only.
type ReservationsConnQueryer interface {
	ReservationsQueryer
}

// ReservationsTxQueryer lists the reservations queries which need a
// transaction, in addition to the read-only queries.
type ReservationsTxQueryer interface {
	ReservationsQueryer

	// Create inserts r and returns the persisted reservation, having
	// its ID, UUID, and timestamps filled by the repository.
	// The r.UUID is kept if it is not uuid.Nil.
	Create(ctx context.Context, r *model.Reservation) (*model.Reservation, error)
}

// ReservationsQueryer contains the read-only reservations queries.
type ReservationsQueryer interface {
	// Exists reports if any reservation, with any status, matches all
	// four fields of the sel selection exactly.
	Exists(ctx context.Context, sel model.Selection) (bool, error)

	// SlotExists reports if any reservation, with any status and for
	// any user, matches the car and dates of the s slot exactly.
	SlotExists(ctx context.Context, s model.Slot) (bool, error)

	// Get finds a reservation by its ID. A missing reservation is
	// reported as a cerr.NotFound error which wraps the
	// model.ErrReservationNotFound.
	Get(ctx context.Context, id int64) (*model.Reservation, error)

	// List returns at most limit reservations, ordered by their IDs,
	// after skipping the first offset rows.
	List(ctx context.Context, limit, offset int) ([]*model.Reservation, error)
}

// Reservations is the reservations repository. It holds no state and
// wraps the connections and transactions which are obtained from a
// Pool in order to expose the relevant queries.
type Reservations interface {
	Conn(Conn) ReservationsConnQueryer
	Tx(Tx) ReservationsTxQueryer
}
