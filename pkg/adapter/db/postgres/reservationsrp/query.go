// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reservationsrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"gorm.io/gorm"
)

type gReservation struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UUID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	IsActive  bool      `gorm:"not null"`
	CarID     int64     `gorm:"not null;index:idx_reservations_selection,priority:2"`
	UserID    int64     `gorm:"not null;index:idx_reservations_selection,priority:1"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_reservations_selection,priority:3"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_reservations_selection,priority:4"`
	Status    string    `gorm:"type:varchar(16);not null"`
}

func (gr *gReservation) TableName() string {
	return "reservations"
}

func (gr *gReservation) Model() *model.Reservation {
	return &model.Reservation{
		ID:        gr.ID,
		UUID:      gr.UUID,
		CarID:     gr.CarID,
		UserID:    gr.UserID,
		StartDate: model.DateOf(gr.StartDate),
		EndDate:   model.DateOf(gr.EndDate),
		Status:    model.Status(gr.Status),
		IsActive:  gr.IsActive,
		CreatedAt: gr.CreatedAt,
		UpdatedAt: gr.UpdatedAt,
	}
}

func fromModel(r *model.Reservation) *gReservation {
	return &gReservation{
		ID:        r.ID,
		UUID:      r.UUID,
		IsActive:  r.IsActive,
		CarID:     r.CarID,
		UserID:    r.UserID,
		StartDate: model.DateOf(r.StartDate),
		EndDate:   model.DateOf(r.EndDate),
		Status:    string(r.Status),
	}
}

// CreateTable creates the reservations table and its indices if they
// do not exist yet.
func CreateTable[Q postgres.Queryer](ctx context.Context, q Q) error {
	if err := q.GORM(ctx).AutoMigrate(&gReservation{}); err != nil {
		return fmt.Errorf("auto-migrate reservations: %w", err)
	}
	return nil
}

// Exists reports whether a reservation with the same user, car, start,
// and end dates of sel exists, ignoring its status.
func Exists[Q postgres.Queryer](ctx context.Context, q Q, sel model.Selection) (bool, error) {
	var n int64
	err := q.GORM(ctx).Model(&gReservation{}).Where(
		"user_id=? AND car_id=? AND start_date=? AND end_date=?",
		sel.UserID, sel.CarID,
		model.DateOf(sel.StartDate), model.DateOf(sel.EndDate),
	).Limit(1).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return n > 0, nil
}

// SlotExists reports whether any user holds a reservation of the same
// car and dates of s.
func SlotExists[Q postgres.Queryer](ctx context.Context, q Q, s model.Slot) (bool, error) {
	var n int64
	err := q.GORM(ctx).Model(&gReservation{}).Where(
		"car_id=? AND start_date=? AND end_date=?",
		s.CarID, model.DateOf(s.StartDate), model.DateOf(s.EndDate),
	).Limit(1).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return n > 0, nil
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, id int64) (*model.Reservation, error) {
	var gr gReservation
	err := q.GORM(ctx).Where("id=?", id).Take(&gr).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(fmt.Errorf(
			"id=%d: %w", id, model.ErrReservationNotFound,
		))
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gr.Model(), nil
}

func List[Q postgres.Queryer](ctx context.Context, q Q, limit, offset int) ([]*model.Reservation, error) {
	var grs []gReservation
	err := q.GORM(ctx).Order("id").Limit(limit).Offset(offset).Find(
		&grs,
	).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	rr := make([]*model.Reservation, 0, len(grs))
	for i := range grs {
		rr = append(rr, grs[i].Model())
	}
	return rr, nil
}

// Create inserts r and returns the stored row, including its
// generated id and timestamps.
func Create[Q postgres.Queryer](ctx context.Context, q Q, r *model.Reservation) (*model.Reservation, error) {
	if err := r.Status.Validate(); err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	gr := fromModel(r)
	if gr.UUID == uuid.Nil {
		gr.UUID = uuid.New()
	}
	if err := q.GORM(ctx).Create(gr).Error; err != nil {
		return nil, fmt.Errorf("insert: %w", err)
	}
	return gr.Model(), nil
}
