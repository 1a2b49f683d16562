package token

import (
	"arcade_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken(t *testing.T) {
	secret := []byte("test-secret")
	user := &model.User{ID: 42}

	t.Run("round trip", func(t *testing.T) {
		tokenStr, err := GenerateAccessToken(user, secret, time.Minute)
		require.NoError(t, err)

		claims, err := VerifyToken(tokenStr, secret)
		require.NoError(t, err)
		assert.Equal(t, "42", claims.ID)
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		tokenStr, err := GenerateAccessToken(user, secret, time.Minute)
		require.NoError(t, err)

		_, err = VerifyToken(tokenStr, []byte("other-secret"))
		assert.Error(t, err)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		tokenStr, err := GenerateAccessToken(user, secret, -time.Minute)
		require.NoError(t, err)

		_, err = VerifyToken(tokenStr, secret)
		assert.Error(t, err)
	})
}

func TestRefreshToken(t *testing.T) {
	tokenStr, err := GenerateRefreshToken()
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	hash := HashRefreshToken(tokenStr)
	assert.True(t, VerifyRefreshToken(tokenStr, hash))
	assert.False(t, VerifyRefreshToken("tampered", hash))
}
