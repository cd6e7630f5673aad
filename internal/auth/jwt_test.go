package auth

import (
	"testing"

	"github.com/teaseong5-stack/azit-erp-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func testUser() *models.User {
	return &models.User{ID: 42, Username: "kim", Role: models.RoleManager}
}

func TestTokenPairRoundTrip(t *testing.T) {
	pair, err := GenerateTokenPair(testSecret, testUser())
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	claims, err := ParseToken(testSecret, pair.Access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "kim", claims.Username)
	assert.Equal(t, models.RoleManager, claims.Role)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	pair, err := GenerateTokenPair(testSecret, testUser())
	require.NoError(t, err)

	_, err = ParseToken("some-other-secret", pair.Access)
	assert.Error(t, err)

	_, err = ParseToken(testSecret, "not-a-token")
	assert.Error(t, err)
}

func TestParseRefreshTokenRejectsAccessToken(t *testing.T) {
	pair, err := GenerateTokenPair(testSecret, testUser())
	require.NoError(t, err)

	claims, err := ParseRefreshToken(testSecret, pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, tokenTypeRefresh, claims.TokenType)

	_, err = ParseRefreshToken(testSecret, pair.Access)
	assert.Error(t, err)
}
