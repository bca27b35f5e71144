package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelkov/bloghub/models"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("test-secret", "user-123", models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("test-secret", "user-123", models.RoleUser, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("test-secret", "user-123", models.RoleUser, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("test-secret", token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("test-secret", "not-a-token")
	assert.Error(t, err)
}

func TestParseTokenUnknownRole(t *testing.T) {
	token, err := GenerateToken("test-secret", "user-123", models.Role("superuser"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("test-secret", token)
	assert.Error(t, err)
}
