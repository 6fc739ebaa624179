package service_test

import (
	"testing"
	"time"

	"github.com/FirstOnDie/authforge/internal/auth/domain"
	"github.com/FirstOnDie/authforge/internal/auth/service"
	autherrors "github.com/FirstOnDie/authforge/internal/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService(t *testing.T) {
	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := service.NewTokenService("", 15)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive TTL", func(t *testing.T) {
		_, err := service.NewTokenService("secret", 0)
		assert.Error(t, err)

		_, err = service.NewTokenService("secret", -5)
		assert.Error(t, err)
	})

	t.Run("success", func(t *testing.T) {
		ts, err := service.NewTokenService("secret", 15)
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, ts.AccessTokenExpiry())
	})
}

func TestTokenRoundTrip(t *testing.T) {
	ts, err := service.NewTokenService("test-secret", 15)
	require.NoError(t, err)

	user := &domain.User{Email: "test@example.com", Role: domain.RoleUser}

	token, expiresAt, err := ts.Generate(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, time.Minute)

	email, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.Email, email)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	ts, err := service.NewTokenService("test-secret", 15)
	require.NoError(t, err)

	t.Run("malformed token", func(t *testing.T) {
		_, err := ts.Verify("not-a-jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other, err := service.NewTokenService("other-secret", 15)
		require.NoError(t, err)

		token, _, err := other.Generate(&domain.User{Email: "test@example.com"})
		require.NoError(t, err)

		_, err = ts.Verify(token)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:   "test@example.com",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = ts.Verify(expired)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("wrong signing method", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "test@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = ts.Verify(unsigned)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}
