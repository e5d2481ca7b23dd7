// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSON(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	buf := &bytes.Buffer{}
	_, err := log.Setup(buf, "json", "info")
	require.NoError(t, err)

	ctx := context.Background()
	log.Debug(ctx, "hidden")
	sel := model.Selection{
		UserID:    1,
		CarID:     2,
		StartDate: model.Date(2022, 8, 10),
		EndDate:   model.Date(2022, 8, 15),
	}
	log.Info(ctx, "admitted",
		log.Valuer("selection", sel),
		log.Err("err", errors.New("boom")),
	)

	rec := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec), "one json line")
	assert.Equal(t, "admitted", rec["msg"])
	assert.Equal(t, "boom", rec["err"])
	assert.Equal(t, map[string]any{
		"user_id":    float64(1),
		"car_id":     float64(2),
		"start_date": "2022-08-10",
		"end_date":   "2022-08-15",
	}, rec["selection"])
}

func TestSetupInvalid(t *testing.T) {
	_, err := log.Setup(&bytes.Buffer{}, "xml", "info")
	assert.Error(t, err)
	_, err = log.Setup(&bytes.Buffer{}, "text", "loud")
	assert.Error(t, err)
}

func TestErrNil(t *testing.T) {
	a := log.Err("err", nil)
	assert.Equal(t, "no-error", a.Value.String())
}
