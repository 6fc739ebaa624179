package domain

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole returns the Role matching the given name, or false when the
// name is not a known role.
func ParseRole(name string) (Role, bool) {
	switch Role(name) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// User is the principal this service issues credentials for.
//
// PasswordHash is empty for users who only authenticate through an external
// provider. VerificationToken is a single slot shared by the email
// verification and password reset flows: minting a token for one flow
// invalidates any outstanding token for the other.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Enabled      bool

	EmailVerified     bool
	VerificationToken string

	TwoFactorEnabled bool
	TwoFactorSecret  string

	Provider   string
	ProviderID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanAuthenticateLocally reports whether the user has a password to check.
func (u *User) CanAuthenticateLocally() bool {
	return u.PasswordHash != ""
}
