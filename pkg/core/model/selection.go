// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DateLayout is the textual layout of calendar dates, both in the
// REST APIs and in the lock keys.
const DateLayout = "2006-01-02"

// Date returns the calendar date y-m-d as a time.Time at midnight UTC.
// All dates in this package are normalized like this, so they may be
// compared with == or Equal, regardless of their source.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates t to its calendar date (in its own location)
// and returns it at midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string as a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// FormatDate formats the t calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Slot identifies a bookable period of one car.
type Slot struct {
	CarID     int64
	StartDate time.Time
	EndDate   time.Time
}

// Selection is the (user, car, start date, end date) tuple which is
// asked by a reservation request. Both dates are inclusive.
type Selection struct {
	UserID    int64
	CarID     int64
	StartDate time.Time
	EndDate   time.Time
}

// ErrInvertedRange indicates that the start date of a Selection comes
// after its end date.
var ErrInvertedRange = errors.New("start date is after the end date")

// Slot returns the car and dates of the s selection, ignoring its user.
func (s Selection) Slot() Slot {
	return Slot{
		CarID:     s.CarID,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
	}
}

// Normalize returns a copy of s with both dates truncated to their
// calendar dates.
func (s Selection) Normalize() Selection {
	s.StartDate = DateOf(s.StartDate)
	s.EndDate = DateOf(s.EndDate)
	return s
}

// Validate checks that identifiers are positive and dates are set and
// ordered. Existence of the car and user entities is not checked.
func (s Selection) Validate() error {
	switch {
	case s.UserID <= 0:
		return fmt.Errorf("user_id (%d) is not positive", s.UserID)
	case s.CarID <= 0:
		return fmt.Errorf("car_id (%d) is not positive", s.CarID)
	case s.StartDate.IsZero() || s.EndDate.IsZero():
		return errors.New("start and end dates are required")
	case s.StartDate.After(s.EndDate):
		return ErrInvertedRange
	}
	return nil
}

// LogValue implements slog.LogValuer, so a Selection may be logged
// as a group of its fields.
func (s Selection) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("user_id", s.UserID),
		slog.Int64("car_id", s.CarID),
		slog.String("start_date", FormatDate(s.StartDate)),
		slog.String("end_date", FormatDate(s.EndDate)),
	)
}
