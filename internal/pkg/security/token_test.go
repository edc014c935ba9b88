package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken("admin", testSecret, TokenTTL)
	require.NoError(t, err)

	claims, err := VerifyToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestVerifyTokenStillValidBeforeExpiry(t *testing.T) {
	// A token issued 6 days ago with the standard 7-day TTL has one day left.
	token, err := GenerateToken("admin", testSecret, TokenTTL-6*24*time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken(token, testSecret)
	assert.NoError(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	// Equivalent to a 7-day token presented one day after expiry.
	token, err := GenerateToken("admin", testSecret, -24*time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("admin", testSecret, TokenTTL)
	require.NoError(t, err)

	_, err = VerifyToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenMalformed(t *testing.T) {
	_, err := VerifyToken("not.a.jwt", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = VerifyToken("", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	_, err := GenerateToken("admin", "", TokenTTL)
	assert.Error(t, err)
}

func TestVerifyPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "hunter2"))
	assert.False(t, VerifyPassword(hash, "hunter3"))
	assert.False(t, VerifyPassword("not-a-hash", "hunter2"))
}
