package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := model.ParseDate("2022-08-10")
	require.NoError(t, err)
	assert.Equal(t, model.Date(2022, 8, 10), d)
	assert.Equal(t, "2022-08-10", model.FormatDate(d))

	for _, s := range []string{"", "2022-8-10", "10/08/2022", "2022-02-30"} {
		_, err := model.ParseDate(s)
		assert.Error(t, err, s)
	}
}

func TestSelectionValidate(t *testing.T) {
	valid := model.Selection{
		UserID:    1,
		CarID:     1,
		StartDate: model.Date(2022, 8, 10),
		EndDate:   model.Date(2022, 8, 15),
	}
	require.NoError(t, valid.Validate())

	sameDay := valid
	sameDay.EndDate = sameDay.StartDate
	assert.NoError(t, sameDay.Validate(), "one day reservation")

	inverted := valid
	inverted.EndDate = model.Date(2022, 8, 9)
	assert.ErrorIs(t, inverted.Validate(), model.ErrInvertedRange)

	noCar := valid
	noCar.CarID = 0
	assert.Error(t, noCar.Validate())

	noStart := valid
	noStart.StartDate = time.Time{}
	assert.Error(t, noStart.Validate())
}

func TestSelectionNormalize(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	sel := model.Selection{
		UserID:    1,
		CarID:     2,
		StartDate: time.Date(2022, 8, 10, 22, 0, 0, 0, loc),
		EndDate:   time.Date(2022, 8, 15, 8, 30, 0, 0, loc),
	}
	n := sel.Normalize()
	assert.Equal(t, model.Date(2022, 8, 10), n.StartDate)
	assert.Equal(t, model.Date(2022, 8, 15), n.EndDate)
	assert.Equal(t, model.Slot{
		CarID:     2,
		StartDate: model.Date(2022, 8, 10),
		EndDate:   model.Date(2022, 8, 15),
	}, n.Slot())
}

func TestStatus(t *testing.T) {
	for _, s := range []model.Status{
		model.StatusProcessing, model.StatusSuccess, model.StatusCancelled,
	} {
		assert.NoError(t, s.Validate())
	}
	err := model.Status("success").Validate()
	var se model.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, `invalid reservation status: "success"`, err.Error())
}

func TestLockScope(t *testing.T) {
	for _, s := range []string{"user", "slot"} {
		ls, err := model.ParseLockScope(s)
		require.NoError(t, err)
		assert.NoError(t, ls.Validate())
		assert.Equal(t, s, ls.String())
	}
	ls, err := model.ParseLockScope("car")
	assert.ErrorIs(t, err, model.ErrUnknownLockScope)
	assert.Equal(t, model.LockScopeInvalid, ls)
	assert.Error(t, ls.Validate())
	assert.Panics(t, func() { _ = ls.String() })
}

func TestPaymentError(t *testing.T) {
	cause := errors.New("card declined")
	var err error = &model.PaymentError{Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "payment: card declined", err.Error())
}
