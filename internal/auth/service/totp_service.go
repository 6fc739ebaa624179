package service

import (
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	totpSecretBytes = 20 // 160 bits of randomness
	totpPeriod      = 30
	totpSkew        = 1 // accept ±1 time step for clock drift
)

// TotpService implements the time-based one-time password second factor:
// 6 digits, 30-second step, HMAC-SHA1. It holds no per-user state; the
// confirmed secret lives on the user record.
type TotpService struct {
	issuer string
}

func NewTotpService(issuer string) *TotpService {
	return &TotpService{issuer: issuer}
}

// GenerateSecret returns a fresh base32 secret for the given account.
// The secret is not persisted here; it is only stored once the user
// confirms it with a valid code (see UserService.EnableTwoFactor).
func (s *TotpService) GenerateSecret(accountEmail string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: accountEmail,
		SecretSize:  totpSecretBytes,
	})
	if err != nil {
		return "", err
	}
	return key.Secret(), nil
}

// ProvisioningURI builds the otpauth URI authenticator apps enroll with.
func (s *TotpService) ProvisioningURI(secret, accountEmail string) string {
	return fmt.Sprintf(
		"otpauth://totp/%s:%s?secret=%s&issuer=%s&digits=6&period=%d",
		s.issuer, accountEmail, secret, s.issuer, totpPeriod)
}

// VerifyCode checks code against secret at the current time step,
// tolerating one step of clock skew in either direction.
func (s *TotpService) VerifyCode(secret, code string) bool {
	ok, err := totp.ValidateCustom(code, secret, time.Now().UTC(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}
