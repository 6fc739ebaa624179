package service_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/FirstOnDie/authforge/internal/auth/service"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	s := service.NewTotpService("AuthForge")

	secret, err := s.GenerateSecret("test@example.com")
	require.NoError(t, err)
	// 20 random bytes base32-encode to 32 characters.
	assert.Len(t, secret, 32)

	other, err := s.GenerateSecret("test@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}

func TestProvisioningURI(t *testing.T) {
	s := service.NewTotpService("AuthForge")

	uri := s.ProvisioningURI("SECRET123", "test@example.com")
	assert.Equal(t,
		"otpauth://totp/AuthForge:test@example.com?secret=SECRET123&issuer=AuthForge&digits=6&period=30",
		uri)
}

func TestVerifyCode(t *testing.T) {
	s := service.NewTotpService("AuthForge")

	t.Run("accepts current code", func(t *testing.T) {
		secret, err := s.GenerateSecret("test@example.com")
		require.NoError(t, err)

		code, err := totp.GenerateCode(secret, time.Now().UTC())
		require.NoError(t, err)

		assert.True(t, s.VerifyCode(secret, code))
	})

	t.Run("accepts code from previous step", func(t *testing.T) {
		secret, err := s.GenerateSecret("test@example.com")
		require.NoError(t, err)

		code, err := totp.GenerateCode(secret, time.Now().UTC().Add(-30*time.Second))
		require.NoError(t, err)

		assert.True(t, s.VerifyCode(secret, code))
	})

	t.Run("rejects wrong code", func(t *testing.T) {
		// Fixed secret/code pair for a deterministic negative.
		const secret = "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP"
		assert.False(t, s.VerifyCode(secret, "000000"))
	})

	t.Run("rejects stale code", func(t *testing.T) {
		secret, err := s.GenerateSecret("test@example.com")
		require.NoError(t, err)

		// Two steps behind is outside the ±1 skew tolerance.
		code, err := totp.GenerateCode(secret, time.Now().UTC().Add(-90*time.Second))
		require.NoError(t, err)

		assert.False(t, s.VerifyCode(secret, code))
	})

	t.Run("rejects garbage input", func(t *testing.T) {
		assert.False(t, s.VerifyCode("not base32!!", "123456"))
		assert.False(t, s.VerifyCode("", ""))
	})
}

func ExampleTotpService_ProvisioningURI() {
	s := service.NewTotpService("AuthForge")
	fmt.Println(s.ProvisioningURI("ABC234", "user@example.com"))
	// Output: otpauth://totp/AuthForge:user@example.com?secret=ABC234&issuer=AuthForge&digits=6&period=30
}
