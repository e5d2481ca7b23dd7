package settings_test

import (
	"testing"

	"github.com/momeni/car-rental/pkg/adapter/config/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverwriteNil(t *testing.T) {
	enabled := true
	var flag *bool
	settings.OverwriteNil(&flag, &enabled)
	require.NotNil(t, flag)
	assert.True(t, *flag)

	enabled = false
	assert.True(t, *flag, "default is copied, not aliased")

	settings.OverwriteNil(&flag, &enabled)
	assert.True(t, *flag, "an explicit setting is kept")

	var addr *string
	settings.OverwriteNil(&addr, nil)
	assert.Nil(t, addr, "nil default leaves the setting omitted")
}
