// Package errors defines the sentinel errors shared across the auth core.
// Handlers map them to HTTP statuses with errors.Is instead of sniffing
// error strings.
package errors

import (
	"errors"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailAlreadyInUse     = errors.New("email already in use")
	ErrUserNotFound          = errors.New("user not found")
	ErrUserDisabled          = errors.New("user account is disabled")
	ErrEmailNotVerified      = errors.New("email address not verified")
	ErrInvalidToken          = errors.New("invalid access token")
	ErrRefreshTokenNotFound  = errors.New("refresh token not found")
	ErrRefreshTokenExpired   = errors.New("refresh token expired")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrInvalidTwoFactorCode  = errors.New("invalid two-factor code")
	ErrTwoFactorNotEnabled   = errors.New("two-factor authentication is not enabled")
	ErrFeatureDisabled       = errors.New("feature is disabled")
	ErrInvalidRole           = errors.New("invalid role")
	ErrNotificationFailure   = errors.New("notification delivery failed")
)
