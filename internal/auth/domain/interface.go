package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/FirstOnDie/authforge/internal/auth/domain UserRepository
//go:generate mockgen -destination=../../mocks/mock_refresh_token_repository.go -package=mocks github.com/FirstOnDie/authforge/internal/auth/domain RefreshTokenRepository
//go:generate mockgen -destination=../../mocks/mock_notifier.go -package=mocks github.com/FirstOnDie/authforge/internal/auth/domain Notifier
//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/FirstOnDie/authforge/internal/auth/domain TokenGenerator

import (
	"context"
	"time"
)

// UserRepository persists principals. Lookup methods return (nil, nil)
// when no matching row exists.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByVerificationToken(ctx context.Context, token string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	GetAll(ctx context.Context) ([]User, error)
}

// RefreshTokenRepository persists refresh tokens.
type RefreshTokenRepository interface {
	// Replace atomically deletes any token belonging to rt.UserID and
	// inserts rt, keeping the one-live-token-per-user invariant even
	// under concurrent calls.
	Replace(ctx context.Context, rt *RefreshToken) error
	GetByToken(ctx context.Context, token string) (*RefreshToken, error)
	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// Notifier delivers single-use tokens to users out of band.
type Notifier interface {
	SendVerificationMessage(ctx context.Context, email, token string) error
	SendPasswordResetMessage(ctx context.Context, email, token string) error
}

// TokenGenerator issues and verifies signed access tokens.
type TokenGenerator interface {
	Generate(user *User) (token string, expiresAt time.Time, err error)
	Verify(token string) (email string, err error)
	AccessTokenExpiry() time.Duration
}
