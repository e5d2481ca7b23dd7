package cerr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapping(t *testing.T) {
	sentinel := errors.New("car is locked")
	for _, tc := range []struct {
		err  *cerr.Error
		code int
	}{
		{cerr.BadRequest(sentinel), http.StatusBadRequest},
		{cerr.NotFound(sentinel), http.StatusNotFound},
		{cerr.NotAcceptable(sentinel), http.StatusNotAcceptable},
		{cerr.Conflict(sentinel), http.StatusConflict},
	} {
		wrapped := fmt.Errorf("use case: %w", tc.err)
		assert.ErrorIs(t, wrapped, sentinel)
		var ce *cerr.Error
		require.ErrorAs(t, wrapped, &ce)
		assert.Equal(t, tc.code, ce.HTTPStatusCode)
		assert.Equal(t,
			fmt.Sprintf("[%d] car is locked", tc.code), ce.Error(),
		)
	}
}
