package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(1, "admin", "owner")
	require.NoError(t, err)

	claims, err := ValidateToken(token, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "owner", claims.Role)
}

func TestValidateToken_RejectsWrongType(t *testing.T) {
	refresh, err := GenerateRefreshToken(1, "admin", "owner")
	require.NoError(t, err)

	_, err = ValidateToken(refresh, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	access, err := GenerateAccessToken(1, "admin", "owner")
	require.NoError(t, err)

	_, err = ValidateToken(access, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateToken_RejectsTampering(t *testing.T) {
	token, err := GenerateAccessToken(1, "admin", "owner")
	require.NoError(t, err)

	_, err = ValidateToken(token+"x", TokenTypeAccess)
	assert.Error(t, err)

	_, err = ValidateToken("not-a-token", TokenTypeAccess)
	assert.Error(t, err)
}
