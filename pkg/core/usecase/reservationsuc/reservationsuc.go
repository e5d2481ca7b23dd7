// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package reservationsuc contains the reservations UseCase which
// admits car reservation requests and queries the committed ones.
//
// Admission of a request follows these steps:
//  1. the DuplicateChecker rejects requests with an identical existing
//     reservation (model.ErrDuplicateReservation),
//  2. the LockManager rejects requests which collide with an in-flight
//     attempt (model.ErrSlotLocked), otherwise it acquires the lock,
//  3. the Payer settles the payment,
//  4. the reservation is inserted in one transaction with SUCCESS
//     status, and
//  5. the lock is released, whether the previous steps succeeded or
//     failed.
//
// Mutual exclusion relies on the atomic set-if-absent primitive of the
// lock store alone; the use case keeps no in-process shared state and
// its methods may be called concurrently.
package reservationsuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

// These constants bound the page size of the List use case.
const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// UseCase represents the reservations use case. It holds a database
// connection pool, the reservations repository, the lock store, and
// the payment collaborator, all of them passed explicitly by New.
type UseCase struct {
	pool  repo.Pool
	resrp repo.Reservations
	payer Payer

	locks *LockManager
	dups  *DuplicateChecker

	lockStore repo.Locks
	lockTTL   time.Duration
	lockScope model.LockScope
}

// New instantiates a reservations use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool,
	r repo.Reservations,
	l repo.Locks,
	payer Payer,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, resrp: r, lockStore: l, payer: payer}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.lockTTL == 0 {
		uc.lockTTL = DefaultLockTTL
	}
	if uc.lockScope == model.LockScopeInvalid {
		uc.lockScope = model.LockScopeUser
	}
	uc.locks = NewLockManager(uc.lockStore, uc.lockTTL, uc.lockScope)
	uc.dups = NewDuplicateChecker(uc.pool, uc.resrp, uc.lockScope)
	return uc, nil
}

// Locks returns the LockManager which is used by this use case.
func (rs *UseCase) Locks() *LockManager {
	return rs.locks
}

// Create use case admits the sel reservation request. On success, the
// persisted reservation with SUCCESS status is returned. Expected
// rejections are returned as cerr errors, wrapping these errors:
//   - model.ErrInvertedRange or other validation errors (400),
//   - model.ErrDuplicateReservation (409), and
//   - model.ErrSlotLocked (406).
//
// A payment failure is returned as a *model.PaymentError. Payment and
// persistence failures leave no reservation row, and in all cases the
// acquired lock is released before returning, so the slot becomes
// bookable again right away.
func (rs *UseCase) Create(
	ctx context.Context, sel model.Selection,
) (*model.Reservation, error) {
	start := time.Now()
	sel = sel.Normalize()
	if err := sel.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	if err := rs.rejectDuplicate(ctx, sel); err != nil {
		return nil, err
	}
	locked, err := rs.locks.IsLocked(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("checking the lock: %w", err)
	}
	if locked {
		log.Debug(ctx, "car selection is locked", log.Valuer("sel", sel))
		return nil, cerr.NotAcceptable(model.ErrSlotLocked)
	}
	acquired, err := rs.locks.TryAcquire(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("acquiring the lock: %w", err)
	}
	if !acquired {
		log.Debug(ctx, "lost the lock race", log.Valuer("sel", sel))
		return nil, cerr.NotAcceptable(model.ErrSlotLocked)
	}
	defer rs.release(ctx, sel)

	// A previous holder commits before releasing the lock, so its row
	// is visible now even if it was not during the first check.
	if err := rs.rejectDuplicate(ctx, sel); err != nil {
		return nil, err
	}
	if err := rs.payer.Pay(ctx, sel); err != nil {
		log.Warn(ctx, "payment failed",
			log.Valuer("sel", sel), log.Err("err", err),
		)
		return nil, &model.PaymentError{Err: err}
	}
	r, err := rs.insert(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("persisting reservation: %w", err)
	}
	log.Info(ctx, "reservation admitted",
		slog.Int64("id", r.ID),
		log.Valuer("sel", sel),
		log.Since("elapsed", start),
	)
	return r, nil
}

func (rs *UseCase) rejectDuplicate(
	ctx context.Context, sel model.Selection,
) error {
	dup, err := rs.dups.Exists(ctx, sel)
	if err != nil {
		return fmt.Errorf("checking duplicates: %w", err)
	}
	if dup {
		log.Debug(ctx, "duplicate reservation", log.Valuer("sel", sel))
		return cerr.Conflict(model.ErrDuplicateReservation)
	}
	return nil
}

func (rs *UseCase) insert(
	ctx context.Context, sel model.Selection,
) (r *model.Reservation, err error) {
	err = rs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			var err error
			r, err = rs.resrp.Tx(tx).Create(ctx, &model.Reservation{
				UUID:      uuid.New(),
				CarID:     sel.CarID,
				UserID:    sel.UserID,
				StartDate: sel.StartDate,
				EndDate:   sel.EndDate,
				Status:    model.StatusSuccess,
				IsActive:  true,
			})
			return err
		})
	})
	if err != nil {
		r = nil
	}
	return
}

// release deletes the sel lock even if ctx is cancelled, because
// a stale lock would block the slot until its TTL elapses. Failures
// are only logged since the TTL recovers from them eventually.
func (rs *UseCase) release(ctx context.Context, sel model.Selection) {
	ctx = context.WithoutCancel(ctx)
	if err := rs.locks.Release(ctx, sel); err != nil {
		log.Error(ctx, "releasing car selection lock",
			log.Valuer("sel", sel),
			log.Err("err", err),
			slog.Duration("ttl", rs.lockTTL),
		)
	}
}

// Get use case finds the id reservation. A missing reservation is
// reported as a cerr.NotFound error.
func (rs *UseCase) Get(
	ctx context.Context, id int64,
) (r *model.Reservation, err error) {
	if id <= 0 {
		return nil, cerr.NotFound(model.ErrReservationNotFound)
	}
	err = rs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		r, err = rs.resrp.Conn(c).Get(ctx, id)
		return err
	})
	if err != nil {
		r = nil
	}
	return
}

// List use case returns at most limit reservations after skipping
// offset of them. A non-positive limit is replaced by the
// DefaultListLimit, while a limit beyond MaxListLimit is rejected.
func (rs *UseCase) List(
	ctx context.Context, limit, offset int,
) (rr []*model.Reservation, err error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		return nil, cerr.BadRequest(fmt.Errorf(
			"limit (%d) is greater than %d", limit, MaxListLimit,
		))
	}
	if offset < 0 {
		return nil, cerr.BadRequest(errors.New("offset is negative"))
	}
	err = rs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		rr, err = rs.resrp.Conn(c).List(ctx, limit, offset)
		return err
	})
	if err != nil {
		rr = nil
	}
	return
}
