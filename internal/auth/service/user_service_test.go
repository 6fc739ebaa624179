package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/FirstOnDie/authforge/config"
	"github.com/FirstOnDie/authforge/internal/auth/domain"
	"github.com/FirstOnDie/authforge/internal/auth/service"
	autherrors "github.com/FirstOnDie/authforge/internal/errors"
	"github.com/FirstOnDie/authforge/internal/mocks"
	"github.com/golang/mock/gomock"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(ctrl *gomock.Controller, cfg *config.Config) (*service.UserService, *mocks.MockUserRepository) {
	users := mocks.NewMockUserRepository(ctrl)
	totpSvc := service.NewTotpService("AuthForge")
	return service.NewUserService(users, totpSvc, cfg, discardLogger()), users
}

func TestGetUserByEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users := newUserService(ctrl, &config.Config{})

	t.Run("found", func(t *testing.T) {
		expected := &domain.User{ID: "user-1", Email: "test@example.com"}
		users.EXPECT().GetByEmail(gomock.Any(), "test@example.com").Return(expected, nil)

		user, err := svc.GetUserByEmail(context.Background(), "Test@Example.com ")
		require.NoError(t, err)
		assert.Equal(t, expected, user)
	})

	t.Run("not found", func(t *testing.T) {
		users.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

		_, err := svc.GetUserByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}

func TestChangeRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users := newUserService(ctrl, &config.Config{})

	t.Run("success", func(t *testing.T) {
		user := &domain.User{ID: "user-1", Email: "test@example.com", Role: domain.RoleUser}
		users.EXPECT().GetByID(gomock.Any(), "user-1").Return(user, nil)
		users.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		updated, err := svc.ChangeRole(context.Background(), "user-1", "ADMIN")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, updated.Role)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := svc.ChangeRole(context.Background(), "user-1", "SUPERUSER")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRole)
	})

	t.Run("unknown user", func(t *testing.T) {
		users.EXPECT().GetByID(gomock.Any(), "user-x").Return(nil, nil)

		_, err := svc.ChangeRole(context.Background(), "user-x", "USER")
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}

func TestSetupTwoFactor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("returns secret and URI without persisting", func(t *testing.T) {
		svc, users := newUserService(ctrl, &config.Config{TwoFactorEnabled: true})

		user := &domain.User{ID: "user-1", Email: "test@example.com"}
		users.EXPECT().GetByEmail(gomock.Any(), "test@example.com").Return(user, nil)
		// No Update expectation: setup must not touch the store.

		out, err := svc.SetupTwoFactor(context.Background(), "test@example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, out.Secret)
		assert.Contains(t, out.URI, "otpauth://totp/AuthForge:test@example.com")
		assert.Contains(t, out.URI, out.Secret)
	})

	t.Run("feature disabled", func(t *testing.T) {
		svc, _ := newUserService(ctrl, &config.Config{TwoFactorEnabled: false})

		_, err := svc.SetupTwoFactor(context.Background(), "test@example.com")
		assert.ErrorIs(t, err, autherrors.ErrFeatureDisabled)
	})
}

func TestEnableTwoFactor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	totpSvc := service.NewTotpService("AuthForge")
	secret, err := totpSvc.GenerateSecret("test@example.com")
	require.NoError(t, err)

	t.Run("valid code persists the secret", func(t *testing.T) {
		svc, users := newUserService(ctrl, &config.Config{TwoFactorEnabled: true})

		code, err := totp.GenerateCode(secret, time.Now().UTC())
		require.NoError(t, err)

		user := &domain.User{ID: "user-1", Email: "test@example.com"}

		var updated *domain.User
		users.EXPECT().GetByEmail(gomock.Any(), "test@example.com").Return(user, nil)
		users.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *domain.User) error {
				updated = u
				return nil
			})

		require.NoError(t, svc.EnableTwoFactor(context.Background(), "test@example.com", secret, code))
		require.NotNil(t, updated)
		assert.True(t, updated.TwoFactorEnabled)
		assert.Equal(t, secret, updated.TwoFactorSecret)
	})

	t.Run("wrong code leaves the user untouched", func(t *testing.T) {
		svc, users := newUserService(ctrl, &config.Config{TwoFactorEnabled: true})

		user := &domain.User{ID: "user-1", Email: "test@example.com"}
		users.EXPECT().GetByEmail(gomock.Any(), "test@example.com").Return(user, nil)

		err := svc.EnableTwoFactor(context.Background(), "test@example.com", secret, "000000")
		assert.ErrorIs(t, err, autherrors.ErrInvalidTwoFactorCode)
		assert.False(t, user.TwoFactorEnabled)
		assert.Empty(t, user.TwoFactorSecret)
	})

	t.Run("feature disabled", func(t *testing.T) {
		svc, _ := newUserService(ctrl, &config.Config{TwoFactorEnabled: false})

		err := svc.EnableTwoFactor(context.Background(), "test@example.com", secret, "123456")
		assert.ErrorIs(t, err, autherrors.ErrFeatureDisabled)
	})
}

func TestDisableTwoFactor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("clears secret and flag", func(t *testing.T) {
		svc, users := newUserService(ctrl, &config.Config{TwoFactorEnabled: true})

		user := &domain.User{
			ID: "user-1", Email: "test@example.com",
			TwoFactorEnabled: true, TwoFactorSecret: "SECRET",
		}

		var updated *domain.User
		users.EXPECT().GetByEmail(gomock.Any(), "test@example.com").Return(user, nil)
		users.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *domain.User) error {
				updated = u
				return nil
			})

		require.NoError(t, svc.DisableTwoFactor(context.Background(), "test@example.com"))
		require.NotNil(t, updated)
		assert.False(t, updated.TwoFactorEnabled)
		assert.Empty(t, updated.TwoFactorSecret)
	})

	t.Run("feature disabled", func(t *testing.T) {
		svc, _ := newUserService(ctrl, &config.Config{TwoFactorEnabled: false})

		err := svc.DisableTwoFactor(context.Background(), "test@example.com")
		assert.ErrorIs(t, err, autherrors.ErrFeatureDisabled)
	})
}
