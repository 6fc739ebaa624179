package service

import (
	"context"
	"log/slog"

	"github.com/FirstOnDie/authforge/config"
	"github.com/FirstOnDie/authforge/internal/auth/domain"
	"github.com/FirstOnDie/authforge/internal/auth/dto"
	autherrors "github.com/FirstOnDie/authforge/internal/errors"
)

// UserService covers profile and admin operations plus the two-factor
// enable/disable state machine. A setup secret is never persisted until
// the user proves possession of it with a valid code.
type UserService struct {
	users domain.UserRepository
	totp  *TotpService
	cfg   *config.Config
	log   *slog.Logger
}

func NewUserService(users domain.UserRepository, totp *TotpService, cfg *config.Config, log *slog.Logger) *UserService {
	return &UserService{users: users, totp: totp, cfg: cfg, log: log}
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherrors.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.GetAll(ctx)
}

// ChangeRole updates a user's role (admin only).
func (s *UserService) ChangeRole(ctx context.Context, userID, newRole string) (*domain.User, error) {
	role, ok := domain.ParseRole(newRole)
	if !ok {
		return nil, autherrors.ErrInvalidRole
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherrors.ErrUserNotFound
	}

	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("role changed", "email", user.Email, "role", role)
	return user, nil
}

// SetupTwoFactor generates a fresh secret and provisioning URI for the
// user. Nothing is stored yet; the secret travels back on the enable call.
func (s *UserService) SetupTwoFactor(ctx context.Context, email string) (*dto.TwoFactorSetupOutput, error) {
	if !s.cfg.TwoFactorEnabled {
		return nil, autherrors.ErrFeatureDisabled
	}

	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	secret, err := s.totp.GenerateSecret(user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.TwoFactorSetupOutput{
		Secret: secret,
		URI:    s.totp.ProvisioningURI(secret, user.Email),
	}, nil
}

// EnableTwoFactor confirms the setup secret with a code and persists it,
// flipping the user to two-factor-enabled.
func (s *UserService) EnableTwoFactor(ctx context.Context, email, secret, code string) error {
	if !s.cfg.TwoFactorEnabled {
		return autherrors.ErrFeatureDisabled
	}

	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	if !s.totp.VerifyCode(secret, code) {
		return autherrors.ErrInvalidTwoFactorCode
	}

	user.TwoFactorEnabled = true
	user.TwoFactorSecret = secret
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info("2FA enabled", "email", user.Email)
	return nil
}

// DisableTwoFactor clears the secret. The caller is already
// authenticated, no extra code challenge is required.
func (s *UserService) DisableTwoFactor(ctx context.Context, email string) error {
	if !s.cfg.TwoFactorEnabled {
		return autherrors.ErrFeatureDisabled
	}

	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	user.TwoFactorEnabled = false
	user.TwoFactorSecret = ""
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info("2FA disabled", "email", user.Email)
	return nil
}
