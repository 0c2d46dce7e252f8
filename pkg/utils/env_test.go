package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	t.Setenv("SOME_KEY", "value")
	assert.Equal(t, "value", Getenv("SOME_KEY", "fallback"))
	assert.Equal(t, "fallback", Getenv("MISSING_KEY", "fallback"))
}

func TestGetenvFloat(t *testing.T) {
	t.Setenv("HOURLY_RATE", "50000")
	assert.Equal(t, 50000.0, GetenvFloat("HOURLY_RATE", 7000))
	assert.Equal(t, 7000.0, GetenvFloat("MISSING_RATE", 7000))

	t.Setenv("BAD_RATE", "abc")
	assert.Equal(t, 7000.0, GetenvFloat("BAD_RATE", 7000))
}
