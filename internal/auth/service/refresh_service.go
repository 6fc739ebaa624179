package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/FirstOnDie/authforge/internal/auth/domain"
	autherrors "github.com/FirstOnDie/authforge/internal/errors"
	"github.com/google/uuid"
)

// RefreshTokenService manages the opaque refresh token lifecycle with a
// one-live-token-per-user policy: issuing always replaces the previous
// token, so a stolen token that gets used evicts the legitimate session
// on its next refresh.
type RefreshTokenService struct {
	repo   domain.RefreshTokenRepository
	expiry time.Duration
	log    *slog.Logger
}

func NewRefreshTokenService(repo domain.RefreshTokenRepository, refreshMinutes int, log *slog.Logger) *RefreshTokenService {
	return &RefreshTokenService{
		repo:   repo,
		expiry: time.Duration(refreshMinutes) * time.Minute,
		log:    log,
	}
}

// Issue creates a new refresh token for the user, atomically removing any
// existing one.
func (s *RefreshTokenService) Issue(ctx context.Context, user *domain.User) (*domain.RefreshToken, error) {
	now := time.Now()
	rt := &domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(s.expiry),
		CreatedAt: now,
	}

	if err := s.repo.Replace(ctx, rt); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rt, nil
}

// Lookup resolves a presented token string to its stored record.
func (s *RefreshTokenService) Lookup(ctx context.Context, token string) (*domain.RefreshToken, error) {
	rt, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, autherrors.ErrRefreshTokenNotFound
	}
	return rt, nil
}

// CheckNotExpired verifies the token is still live. Expired tokens are
// deleted on presentation; there is no background sweep.
func (s *RefreshTokenService) CheckNotExpired(ctx context.Context, rt *domain.RefreshToken) error {
	if rt.IsExpired(time.Now()) {
		if err := s.repo.Delete(ctx, rt.ID); err != nil {
			s.log.Warn("failed to delete expired refresh token", "token_id", rt.ID, "error", err)
		}
		return autherrors.ErrRefreshTokenExpired
	}
	return nil
}

// RevokeAll removes the user's refresh token. Used on logout; calling it
// when no token exists is not an error.
func (s *RefreshTokenService) RevokeAll(ctx context.Context, userID string) error {
	return s.repo.DeleteByUserID(ctx, userID)
}
