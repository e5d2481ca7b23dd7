// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package reservationsrs realizes the reservations resource, allowing
// the reservation REST APIs to be accepted and delegated to the
// reservations use cases respectively.
package reservationsrs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/car-rental/pkg/adapter/metrics"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/usecase/reservationsuc"
)

// LocationHeader carries the id of a created reservation.
const LocationHeader = "X-Location-Id"

// AdmissionObserver is notified about the outcome of each reservation
// request, e.g., in order to count them. See the metrics.Outcome*
// constants for the possible outcome values.
type AdmissionObserver interface {
	Admission(outcome string)
}

type resource struct {
	reservations *reservationsuc.UseCase
	observer     AdmissionObserver
}

// Register instantiates a resource adapting the reservations use case
// instance with the relevant REST APIs including:
//  1. POST request to /reservations in order to reserve a car,
//  2. GET request to /reservations in order to list reservations, and
//  3. GET request to /reservations/:id in order to fetch one of them.
//
// The obs observer may be nil.
func Register(
	r *gin.RouterGroup,
	reservations *reservationsuc.UseCase,
	obs AdmissionObserver,
) {
	rs := &resource{reservations: reservations, observer: obs}
	r.POST("reservations", rs.CreateReservation)
	r.GET("reservations", rs.ListReservations)
	r.GET("reservations/:id", rs.GetReservation)
}

func (rs *resource) CreateReservation(c *gin.Context) {
	sel := rs.DserCreateReq(c)
	if sel == nil {
		rs.observe(metrics.OutcomeInvalid)
		return
	}
	res, err := rs.reservations.Create(c, *sel)
	if err != nil {
		rs.observe(outcome(err))
		var pe *model.PaymentError
		if errors.As(err, &pe) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"detail": "payment failed",
			})
			return
		}
		serdser.SerErr(c, err)
		return
	}
	rs.observe(metrics.OutcomeAdmitted)
	id := strconv.FormatInt(res.ID, 10)
	c.Header(LocationHeader, id)
	c.Header("Location", c.FullPath()+"/"+id)
	c.JSON(http.StatusCreated, SerReservation(res))
}

func (rs *resource) ListReservations(c *gin.Context) {
	req := &listReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return
	}
	rr, err := rs.reservations.List(c, req.Limit, req.Offset)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	resp := make([]*reservationResp, 0, len(rr))
	for _, r := range rr {
		resp = append(resp, SerReservation(r))
	}
	c.JSON(http.StatusOK, resp)
}

func (rs *resource) GetReservation(c *gin.Context) {
	req := &getReq{}
	if ok := serdser.BindURI(c, req); !ok {
		return
	}
	r, err := rs.reservations.Get(c, req.ID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerReservation(r))
}

func (rs *resource) observe(outcome string) {
	if rs.observer != nil {
		rs.observer.Admission(outcome)
	}
}

func outcome(err error) string {
	var pe *model.PaymentError
	var ce *cerr.Error
	switch {
	case errors.Is(err, model.ErrDuplicateReservation):
		return metrics.OutcomeDuplicate
	case errors.Is(err, model.ErrSlotLocked):
		return metrics.OutcomeLocked
	case errors.As(err, &pe):
		return metrics.OutcomePaymentFailed
	case errors.As(err, &ce) && ce.HTTPStatusCode == http.StatusBadRequest:
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
