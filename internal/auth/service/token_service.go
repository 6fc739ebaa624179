package service

import (
	"errors"
	"fmt"
	"time"

	autherrors "github.com/FirstOnDie/authforge/internal/errors"

	"github.com/FirstOnDie/authforge/internal/auth/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies the short-lived HS256 access tokens.
// There is no revocation list: validity is purely signature plus expiry,
// so a compromised access token stays usable until it runs out.
type TokenService struct {
	secret       []byte
	accessExpiry time.Duration
}

type AccessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

func NewTokenService(secret string, accessMinutes int) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service: empty signing secret")
	}
	if accessMinutes <= 0 {
		return nil, fmt.Errorf("token service: non-positive access token TTL %d", accessMinutes)
	}

	return &TokenService{
		secret:       []byte(secret),
		accessExpiry: time.Duration(accessMinutes) * time.Minute,
	}, nil
}

// Generate signs an access token whose subject is the user's email.
func (ts *TokenService) Generate(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ts.accessExpiry)

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: string(user.Role),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// Verify checks signature and expiry and returns the subject email.
// Any malformed, tampered or expired token fails with ErrInvalidToken.
func (ts *TokenService) Verify(tokenString string) (string, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", autherrors.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", autherrors.ErrInvalidToken
	}

	return claims.Subject, nil
}

func (ts *TokenService) AccessTokenExpiry() time.Duration {
	return ts.accessExpiry
}
