// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"time"

	"github.com/momeni/car-rental/pkg/adapter/config/settings"
	"github.com/momeni/car-rental/pkg/adapter/payment/simpay"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/reservationsuc"
)

// Reservations contains the configuration settings for the
// reservations use cases.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized. Missing items are left for the use cases
// layer to choose their default values.
type Reservations struct {
	// LockTTL indicates how long a car selection lock may be held
	// before it expires automatically.
	LockTTL *settings.Duration `yaml:"lock-ttl,omitempty"`
	// MinLockTTL is the inclusive minimum acceptable value
	// for the LockTTL setting.
	// A missing value indicates that there is no lower bound.
	MinLockTTL *settings.Duration `yaml:"lock-ttl-minimum,omitempty"`
	// MaxLockTTL is the inclusive maximum acceptable value
	// for the LockTTL setting.
	// A missing value indicates that there is no upper bound.
	MaxLockTTL *settings.Duration `yaml:"lock-ttl-maximum,omitempty"`

	// LockScope is either "user" (locks and duplicates are tracked
	// per user, car, and dates) or "slot" (per car and dates).
	LockScope *string `yaml:"lock-scope,omitempty"`

	// PaymentLatency is the blocking time of the simulated payments.
	PaymentLatency *settings.Duration `yaml:"payment-latency,omitempty"`
	// PaymentFailureRate is the fraction of simulated payments which
	// are declined, in the [0, 1] range.
	PaymentFailureRate *float64 `yaml:"payment-failure-rate,omitempty"`
}

func (r *Reservations) ValidateAndNormalize() error {
	if r.LockTTL != nil && *r.LockTTL <= 0 {
		return fmt.Errorf("lock-ttl (%v) is not positive",
			time.Duration(*r.LockTTL),
		)
	}
	if err := settings.VerifyRange(
		&r.LockTTL, r.MinLockTTL, r.MaxLockTTL,
	); err != nil {
		return fmt.Errorf(
			"VerifyRange(lock ttl=%v, minb=%v, maxb=%v): %w",
			err.Value, r.MinLockTTL, r.MaxLockTTL, err,
		)
	}
	if r.LockScope != nil {
		if _, err := model.ParseLockScope(*r.LockScope); err != nil {
			return fmt.Errorf("lock-scope: %w", err)
		}
	}
	if r.PaymentLatency != nil && *r.PaymentLatency < 0 {
		return fmt.Errorf("payment-latency (%v) is negative",
			time.Duration(*r.PaymentLatency),
		)
	}
	if fr := r.PaymentFailureRate; fr != nil && (*fr < 0 || *fr > 1) {
		return fmt.Errorf("payment-failure-rate (%v) is out of [0, 1]", *fr)
	}
	return nil
}

// NewUseCase instantiates a new reservations use case based on the
// settings in the r struct.
func (r Reservations) NewUseCase(
	p repo.Pool,
	resrp repo.Reservations,
	l repo.Locks,
	payer reservationsuc.Payer,
) (*reservationsuc.UseCase, error) {
	opts := make([]reservationsuc.Option, 0, 2)
	if r.LockTTL != nil {
		d := time.Duration(*r.LockTTL)
		opts = append(opts, reservationsuc.WithLockTTL(d))
	}
	if r.LockScope != nil {
		scope, err := model.ParseLockScope(*r.LockScope)
		if err != nil {
			return nil, err
		}
		opts = append(opts, reservationsuc.WithLockScope(scope))
	}
	return reservationsuc.New(p, resrp, l, payer, opts...)
}

// NewPayer instantiates the simulated payment gateway based on the
// settings in the r struct.
func (r Reservations) NewPayer() (*simpay.Gateway, error) {
	opts := make([]simpay.Option, 0, 2)
	if r.PaymentLatency != nil {
		d := time.Duration(*r.PaymentLatency)
		opts = append(opts, simpay.WithLatency(d))
	}
	if r.PaymentFailureRate != nil {
		opts = append(opts, simpay.WithFailureRate(
			*r.PaymentFailureRate, time.Now().UnixNano(),
		))
	}
	return simpay.New(opts...)
}
