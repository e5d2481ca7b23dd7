// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// their registration on a gin-gonic engine.
package routes

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-rental/pkg/adapter/metrics"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/healthrs"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/reservationsrs"
	"github.com/momeni/car-rental/pkg/core/usecase/reservationsuc"
)

// BasePath is the common prefix of all API paths.
const BasePath = "/api/crweb/v1"

// Register registers the reservations and health resources under the
// BasePath using the e gin-gonic engine instance. The reservations use
// case must be instantiated beforehand, so the resources only adapt
// its methods with the REST APIs.
// If m is not nil, the request metrics are collected by a middleware,
// admission outcomes are counted, and the metrics are served at the
// /metrics path. The checks are pinged by the health resource.
func Register(
	e *gin.Engine,
	reservations *reservationsuc.UseCase,
	m *metrics.Metrics,
	checks map[string]healthrs.Checker,
) error {
	if reservations == nil {
		return errors.New("reservations use case is nil")
	}
	var obs reservationsrs.AdmissionObserver
	if m != nil {
		e.Use(m.Middleware())
		e.GET("/metrics", m.Handler())
		obs = m
	}
	r := e.Group(BasePath)
	reservationsrs.Register(r, reservations, obs)
	healthrs.Register(r, checks)
	return nil
}
