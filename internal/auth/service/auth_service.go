package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/FirstOnDie/authforge/config"
	"github.com/FirstOnDie/authforge/internal/auth/domain"
	"github.com/FirstOnDie/authforge/internal/auth/dto"
	autherrors "github.com/FirstOnDie/authforge/internal/errors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService orchestrates the credential and session lifecycle:
// registration, login (with optional 2FA step-up), refresh rotation,
// logout, email verification, password reset and the external-identity
// hand-off. It is the only component talking to the user store and the
// notifier.
type AuthService struct {
	users    domain.UserRepository
	refresh  *RefreshTokenService
	tokens   domain.TokenGenerator
	totp     *TotpService
	notifier domain.Notifier
	cfg      *config.Config
	log      *slog.Logger
}

func NewAuthService(
	users domain.UserRepository,
	refresh *RefreshTokenService,
	tokens domain.TokenGenerator,
	totp *TotpService,
	notifier domain.Notifier,
	cfg *config.Config,
	log *slog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		refresh:  refresh,
		tokens:   tokens,
		totp:     totp,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
	}
}

// NormalizeEmail lower-cases and trims an email address so lookups and
// uniqueness checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new local user. When email verification is on, the
// response carries the pending flag instead of tokens and a verification
// message is sent; otherwise the user is signed in immediately.
func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	email := NormalizeEmail(input.Email)

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, autherrors.ErrEmailAlreadyInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:            uuid.NewString(),
		Email:         email,
		Name:          input.Name,
		PasswordHash:  string(hashed),
		Role:          domain.RoleUser,
		Enabled:       true,
		EmailVerified: !s.cfg.EmailVerificationEnabled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("user registered", "email", user.Email)

	if s.cfg.EmailVerificationEnabled {
		token := uuid.NewString()
		user.VerificationToken = token
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}

		// The token stays valid even if delivery fails; the user can
		// trigger a resend by registering interest again.
		if err := s.notifier.SendVerificationMessage(ctx, user.Email, token); err != nil {
			s.log.Error("verification message delivery failed", "email", user.Email, "error", err)
		}

		return &dto.AuthResponse{
			RequiresEmailVerification: true,
			User:                      &dto.UserSummary{Email: user.Email, Name: user.Name},
		}, nil
	}

	return s.issueTokens(ctx, user)
}

// Login checks primary credentials. A 2FA-enabled user gets a step-up
// challenge response instead of tokens.
func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.CanAuthenticateLocally() {
		return nil, autherrors.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, autherrors.ErrInvalidCredentials
	}
	if !user.Enabled {
		return nil, autherrors.ErrUserDisabled
	}
	if s.cfg.EmailVerificationEnabled && !user.EmailVerified {
		return nil, autherrors.ErrEmailNotVerified
	}

	if s.cfg.TwoFactorEnabled && user.TwoFactorEnabled {
		s.log.Info("2FA required", "email", user.Email)
		return &dto.AuthResponse{
			RequiresTwoFactor: true,
			User:              &dto.UserSummary{Email: user.Email},
		}, nil
	}

	s.log.Info("user logged in", "email", user.Email)
	return s.issueTokens(ctx, user)
}

// VerifyTwoFactor completes a pending step-up challenge and issues tokens.
func (s *AuthService) VerifyTwoFactor(ctx context.Context, email, code string) (*dto.AuthResponse, error) {
	if !s.cfg.TwoFactorEnabled {
		return nil, autherrors.ErrFeatureDisabled
	}

	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherrors.ErrUserNotFound
	}
	if !user.TwoFactorEnabled || user.TwoFactorSecret == "" {
		return nil, autherrors.ErrTwoFactorNotEnabled
	}
	if !s.totp.VerifyCode(user.TwoFactorSecret, code) {
		return nil, autherrors.ErrInvalidTwoFactorCode
	}

	s.log.Info("2FA verified", "email", user.Email)
	return s.issueTokens(ctx, user)
}

// Refresh exchanges a live refresh token for a new token pair. Rotation
// invalidates the presented token: a second exchange with the same value
// fails.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	rt, err := s.refresh.Lookup(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if err := s.refresh.CheckNotExpired(ctx, rt); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, rt.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherrors.ErrUserNotFound
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the user's refresh token. Repeated calls are harmless.
func (s *AuthService) Logout(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return autherrors.ErrUserNotFound
	}

	if err := s.refresh.RevokeAll(ctx, user.ID); err != nil {
		return err
	}
	s.log.Info("user logged out", "email", user.Email)
	return nil
}

// ForceLogout revokes a user's refresh token by id (admin operation).
func (s *AuthService) ForceLogout(ctx context.Context, userID string) error {
	return s.refresh.RevokeAll(ctx, userID)
}

// VerifyEmail redeems a verification token, marking the email verified
// and clearing the single-use slot in the same update.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.users.GetByVerificationToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return autherrors.ErrInvalidOrExpiredToken
	}

	user.EmailVerified = true
	user.VerificationToken = ""
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info("email verified", "email", user.Email)
	return nil
}

// ForgotPassword mints a reset token into the user's single-use slot,
// overwriting any outstanding verification token. On delivery failure the
// token is still returned alongside ErrNotificationFailure so callers can
// distinguish it from an unknown address.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", autherrors.ErrUserNotFound
	}

	token := uuid.NewString()
	user.VerificationToken = token
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}

	if s.cfg.EmailVerificationEnabled {
		if err := s.notifier.SendPasswordResetMessage(ctx, user.Email, token); err != nil {
			s.log.Error("password reset delivery failed", "email", user.Email, "error", err)
			return token, fmt.Errorf("%w: %v", autherrors.ErrNotificationFailure, err)
		}
		s.log.Info("password reset message sent", "email", user.Email)
	} else {
		s.log.Info("password reset token minted", "email", user.Email)
	}

	return token, nil
}

// ResetPassword redeems a reset token, replacing the credential hash and
// clearing the slot in one update.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.users.GetByVerificationToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return autherrors.ErrInvalidOrExpiredToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hashed)
	user.VerificationToken = ""
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info("password reset", "email", user.Email)
	return nil
}

// HandleExternalLogin receives a verified external identity and signs in
// the matching local user, creating one on first contact. Provider emails
// are trusted as verified.
func (s *AuthService) HandleExternalLogin(ctx context.Context, provider, providerID, email, name string) (*dto.AuthResponse, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, autherrors.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if user != nil {
		user.Name = name
		user.Provider = provider
		user.ProviderID = providerID
		user.UpdatedAt = now
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
		s.log.Info("external user updated", "email", email, "provider", provider)
	} else {
		user = &domain.User{
			ID:            uuid.NewString(),
			Email:         email,
			Name:          name,
			Role:          domain.RoleUser,
			Enabled:       true,
			EmailVerified: true,
			Provider:      provider,
			ProviderID:    providerID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		s.log.Info("external user created", "email", email, "provider", provider)
	}

	if !user.Enabled {
		return nil, autherrors.ErrUserDisabled
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*dto.AuthResponse, error) {
	accessToken, _, err := s.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	rt, err := s.refresh.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: rt.Token,
		TokenType:    "Bearer",
		ExpiresIn:    s.tokens.AccessTokenExpiry().Milliseconds(),
		User: &dto.UserSummary{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  string(user.Role),
		},
	}, nil
}
