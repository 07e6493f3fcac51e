package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	email, err := NormalizeEmail("  Guest@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", email)

	_, err = NormalizeEmail(" ")
	assert.ErrorIs(t, err, ErrEmailRequired)

	for _, bad := range []string{"guest", "guest@example", "a b@example.com", "@example.com"} {
		_, err = NormalizeEmail(bad)
		assert.ErrorIs(t, err, ErrInvalidEmail, bad)
	}
}
