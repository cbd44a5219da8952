package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplication_InvalidConfig(t *testing.T) {
	original, hadValue := os.LookupEnv("SERVER_PORT")
	t.Cleanup(func() {
		if hadValue {
			_ = os.Setenv("SERVER_PORT", original)
		} else {
			_ = os.Unsetenv("SERVER_PORT")
		}
	})

	// An out-of-range port fails validation before anything touches the
	// database
	require.NoError(t, os.Setenv("SERVER_PORT", "0"))

	app, err := NewApplication()
	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestConfigDisplayer_MaskString(t *testing.T) {
	displayer := NewConfigDisplayer()

	assert.Equal(t, "(empty)", displayer.maskString(""))
	assert.Equal(t, "****", displayer.maskString("abc"))

	masked := displayer.maskString("verylongpassword")
	assert.Equal(t, "ve****rd", masked)
}

func TestConfigDisplayer_IsSensitive(t *testing.T) {
	displayer := NewConfigDisplayer()

	assert.True(t, displayer.isSensitive("DB_PASSWORD"))
	assert.True(t, displayer.isSensitive("api_key"))
	assert.True(t, displayer.isSensitive("AUTH_TOKEN_TTL_HOURS"))
	assert.False(t, displayer.isSensitive("SERVER_PORT"))
}
