package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)

	t.Setenv("JWT_SECRET", "s3cret")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", config.JWT.Secret)
	assert.Equal(t, "8080", config.App.Port)
}
