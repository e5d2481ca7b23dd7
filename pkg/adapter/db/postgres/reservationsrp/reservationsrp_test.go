// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reservationsrp_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/internal/test/dbcontainer"
	"github.com/momeni/car-rental/internal/test/sqlitedb"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/reservationsrp"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

type ReservationsRepoTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pool *postgres.Pool
	Repo *reservationsrp.Repo
}

func TestSQLiteReservationsRepoTestSuite(t *testing.T) {
	suite.Run(t, &ReservationsRepoTestSuite{
		Ctx:  context.Background(),
		Pool: sqlitedb.New(t),
		Repo: reservationsrp.New(),
	})
}

func TestIntegrationReservationsRepoTestSuite(t *testing.T) {
	ctx := context.Background()
	suite.Run(t, &ReservationsRepoTestSuite{
		Ctx:  ctx,
		Pool: dbcontainer.New(ctx, t, 60*time.Second),
		Repo: reservationsrp.New(),
	})
}

func (rts *ReservationsRepoTestSuite) create(
	sel model.Selection, status model.Status,
) *model.Reservation {
	var r *model.Reservation
	err := rts.Pool.Conn(rts.Ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			var err error
			r, err = rts.Repo.Tx(tx).Create(ctx, &model.Reservation{
				UUID:      uuid.New(),
				CarID:     sel.CarID,
				UserID:    sel.UserID,
				StartDate: sel.StartDate,
				EndDate:   sel.EndDate,
				Status:    status,
				IsActive:  true,
			})
			return err
		})
	})
	rts.Require().NoError(err, "creating a reservation")
	return r
}

func (rts *ReservationsRepoTestSuite) conn(
	f func(ctx context.Context, q repo.ReservationsConnQueryer),
) {
	err := rts.Pool.Conn(rts.Ctx, func(ctx context.Context, c repo.Conn) error {
		f(ctx, rts.Repo.Conn(c))
		return nil
	})
	rts.Require().NoError(err)
}

func (rts *ReservationsRepoTestSuite) TestCreateAndGet() {
	sel := model.Selection{
		UserID:    1,
		CarID:     2,
		StartDate: model.Date(2030, 1, 10),
		EndDate:   model.Date(2030, 1, 12),
	}
	r := rts.create(sel, model.StatusSuccess)
	rts.Positive(r.ID)
	rts.NotEqual(uuid.Nil, r.UUID)
	rts.Equal(sel, r.Selection())
	rts.Equal(model.StatusSuccess, r.Status)
	rts.True(r.IsActive)
	rts.False(r.CreatedAt.IsZero(), "created_at must be filled")

	rts.conn(func(ctx context.Context, q repo.ReservationsConnQueryer) {
		got, err := q.Get(ctx, r.ID)
		rts.Require().NoError(err)
		rts.Equal(r.ID, got.ID)
		rts.Equal(r.UUID, got.UUID)
		rts.Equal(sel, got.Selection())
		rts.Equal(model.StatusSuccess, got.Status)
	})
}

func (rts *ReservationsRepoTestSuite) TestGetMissing() {
	rts.conn(func(ctx context.Context, q repo.ReservationsConnQueryer) {
		_, err := q.Get(ctx, 1<<40)
		rts.ErrorIs(err, model.ErrReservationNotFound)
		var ce *cerr.Error
		rts.Require().True(errors.As(err, &ce), "a cerr.Error is expected")
		rts.Equal(404, ce.HTTPStatusCode)
	})
}

func (rts *ReservationsRepoTestSuite) TestCreateInvalidStatus() {
	err := rts.Pool.Conn(rts.Ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			_, err := rts.Repo.Tx(tx).Create(ctx, &model.Reservation{
				CarID:     1,
				UserID:    1,
				StartDate: model.Date(2030, 2, 1),
				EndDate:   model.Date(2030, 2, 1),
				Status:    "BOOKED",
			})
			return err
		})
	})
	var se model.StatusError
	rts.ErrorAs(err, &se)
	rts.Equal(model.StatusError("BOOKED"), se)
}

func (rts *ReservationsRepoTestSuite) TestExists() {
	sel := model.Selection{
		UserID:    7,
		CarID:     3,
		StartDate: model.Date(2030, 3, 1),
		EndDate:   model.Date(2030, 3, 5),
	}
	rts.create(sel, model.StatusCancelled)

	other := sel
	other.UserID = 8
	shifted := sel
	shifted.EndDate = model.Date(2030, 3, 6)
	for _, tc := range []struct {
		name       string
		sel        model.Selection
		exists     bool
		slotExists bool
	}{
		{"same selection", sel, true, true},
		{"other user", other, false, true},
		{"other end date", shifted, false, false},
	} {
		rts.Run(tc.name, func() {
			rts.conn(func(ctx context.Context, q repo.ReservationsConnQueryer) {
				found, err := q.Exists(ctx, tc.sel)
				rts.Require().NoError(err)
				rts.Equal(tc.exists, found, "Exists")
				found, err = q.SlotExists(ctx, tc.sel.Slot())
				rts.Require().NoError(err)
				rts.Equal(tc.slotExists, found, "SlotExists")
			})
		})
	}
}

func (rts *ReservationsRepoTestSuite) TestList() {
	var ids []int64
	for i := 0; i < 3; i++ {
		r := rts.create(model.Selection{
			UserID:    100,
			CarID:     int64(100 + i),
			StartDate: model.Date(2031, 1, 1),
			EndDate:   model.Date(2031, 1, 2),
		}, model.StatusSuccess)
		ids = append(ids, r.ID)
	}
	rts.conn(func(ctx context.Context, q repo.ReservationsConnQueryer) {
		all, err := q.List(ctx, 1000, 0)
		rts.Require().NoError(err)
		for i := 1; i < len(all); i++ {
			rts.Less(all[i-1].ID, all[i].ID, "ordered by id")
		}
		var offset int
		for i, r := range all {
			if r.ID == ids[0] {
				offset = i
			}
		}
		page, err := q.List(ctx, 2, offset+1)
		rts.Require().NoError(err)
		rts.Require().Len(page, 2)
		rts.Equal(ids[1], page[0].ID)
		rts.Equal(ids[2], page[1].ID)
	})
}

func (rts *ReservationsRepoTestSuite) TestRollback() {
	sel := model.Selection{
		UserID:    9,
		CarID:     9,
		StartDate: model.Date(2032, 5, 1),
		EndDate:   model.Date(2032, 5, 2),
	}
	errAbort := errors.New("abort")
	err := rts.Pool.Conn(rts.Ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			_, err := rts.Repo.Tx(tx).Create(ctx, &model.Reservation{
				CarID:     sel.CarID,
				UserID:    sel.UserID,
				StartDate: sel.StartDate,
				EndDate:   sel.EndDate,
				Status:    model.StatusSuccess,
				IsActive:  true,
			})
			rts.Require().NoError(err)
			return errAbort
		})
	})
	rts.ErrorIs(err, errAbort)
	rts.conn(func(ctx context.Context, q repo.ReservationsConnQueryer) {
		found, err := q.Exists(ctx, sel)
		rts.Require().NoError(err)
		rts.False(found, "rolled back insert must not be visible")
	})
}

func (rts *ReservationsRepoTestSuite) TestPanicRollback() {
	sel := model.Selection{
		UserID:    10,
		CarID:     10,
		StartDate: model.Date(2032, 6, 1),
		EndDate:   model.Date(2032, 6, 3),
	}
	err := rts.Pool.Conn(rts.Ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			_, err := rts.Repo.Tx(tx).Create(ctx, &model.Reservation{
				CarID:     sel.CarID,
				UserID:    sel.UserID,
				StartDate: sel.StartDate,
				EndDate:   sel.EndDate,
				Status:    model.StatusSuccess,
				IsActive:  true,
			})
			rts.Require().NoError(err)
			panic("handler bug")
		})
	})
	rts.Require().Error(err)
	rts.Contains(err.Error(), "panicked: handler bug")
	rts.conn(func(ctx context.Context, q repo.ReservationsConnQueryer) {
		found, err := q.Exists(ctx, sel)
		rts.Require().NoError(err)
		rts.False(found, "insert of a panicked tx must not be visible")
	})
}
