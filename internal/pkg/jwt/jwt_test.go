//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"qr-coupon-server/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	svc := jwt.NewService("secret")
	userID := uuid.New()
	clientID := uuid.New()

	t.Run("round trip keeps role and client", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, "client", &clientID, time.Hour)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "client", claims.Role)
		require.NotNil(t, claims.ClientID)
		assert.Equal(t, clientID, *claims.ClientID)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, "admin", nil, -time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("foreign signature", func(t *testing.T) {
		token, err := jwt.NewService("other").GenerateToken(userID, "admin", nil, time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
