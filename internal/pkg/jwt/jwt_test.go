package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	before := time.Now()
	token, expiresAt, err := svc.GenerateAccessToken("admin", true)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, before.Add(time.Hour).Unix(), expiresAt, 2)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin", decoded.Subject())

	isAdmin, ok := decoded.Get("is_admin")
	require.True(t, ok)
	assert.Equal(t, true, isAdmin)

	tokenType, _ := decoded.Get("type")
	assert.Equal(t, TokenTypeAccess, tokenType)
}

func TestSSEToken(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	t.Run("round trip", func(t *testing.T) {
		token, expiresIn, err := svc.GenerateSSEToken("admin")
		require.NoError(t, err)
		assert.Equal(t, 300, expiresIn)

		subject, err := svc.ValidateSSEToken(token)
		require.NoError(t, err)
		assert.Equal(t, "admin", subject)
	})

	t.Run("access token is rejected", func(t *testing.T) {
		token, _, err := svc.GenerateAccessToken("admin", true)
		require.NoError(t, err)

		_, err = svc.ValidateSSEToken(token)
		assert.Error(t, err)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		other := NewJWTService("another-secret", time.Hour)
		token, _, err := other.GenerateSSEToken("admin")
		require.NoError(t, err)

		_, err = svc.ValidateSSEToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := svc.ValidateSSEToken("not-a-token")
		assert.Error(t, err)
	})
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken("admin", true)
	require.NoError(t, err)
	assert.False(t, svc.IsTokenRevoked(token))

	svc.RevokeToken(token, expiresAt)
	assert.True(t, svc.IsTokenRevoked(token))

	svc.RevokeToken("stale", time.Now().Add(-time.Hour).Unix())
	svc.RevokeToken("fresh", time.Now().Add(time.Hour).Unix())
	assert.False(t, svc.IsTokenRevoked("stale"))
	assert.True(t, svc.IsTokenRevoked(token))
}
