package handler

import (
	"errors"

	"github.com/FirstOnDie/authforge/internal/auth/dto"
	"github.com/FirstOnDie/authforge/internal/auth/service"
	autherrors "github.com/FirstOnDie/authforge/internal/errors"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// statusFromError maps the service error taxonomy to HTTP statuses.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, autherrors.ErrEmailAlreadyInUse):
		return fiber.StatusConflict
	case errors.Is(err, autherrors.ErrInvalidCredentials),
		errors.Is(err, autherrors.ErrUserDisabled),
		errors.Is(err, autherrors.ErrEmailNotVerified),
		errors.Is(err, autherrors.ErrInvalidToken),
		errors.Is(err, autherrors.ErrRefreshTokenNotFound),
		errors.Is(err, autherrors.ErrRefreshTokenExpired),
		errors.Is(err, autherrors.ErrInvalidOrExpiredToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, autherrors.ErrInvalidTwoFactorCode),
		errors.Is(err, autherrors.ErrTwoFactorNotEnabled),
		errors.Is(err, autherrors.ErrInvalidRole):
		return fiber.StatusBadRequest
	case errors.Is(err, autherrors.ErrFeatureDisabled),
		errors.Is(err, autherrors.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, autherrors.ErrNotificationFailure):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(statusFromError(err)).JSON(fiber.Map{"error": err.Error()})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	resp, err := h.authService.Register(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	resp, err := h.authService.Login(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *AuthHandler) VerifyTwoFactor(c *fiber.Ctx) error {
	var input dto.TwoFactorLoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	resp, err := h.authService.VerifyTwoFactor(c.Context(), input.Email, input.Code)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	resp, err := h.authService.Refresh(c.Context(), input.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	email, _ := c.Locals(localsEmailKey).(string)
	if email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := h.authService.Logout(c.Context(), email); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "logged out"})
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing token"})
	}

	if err := h.authService.VerifyEmail(c.Context(), token); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "email verified"})
}

// ForgotPassword always answers with the same body whether or not the
// address exists, so the endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input dto.ForgotPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	_, err := h.authService.ForgotPassword(c.Context(), input.Email)
	if err != nil && !errors.Is(err, autherrors.ErrUserNotFound) {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "if that email exists, a reset link has been sent",
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input dto.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.authService.ResetPassword(c.Context(), input.Token, input.NewPassword); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "password reset"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	email, _ := c.Locals(localsEmailKey).(string)

	user, err := h.userService.GetUserByEmail(c.Context(), email)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.UserOutput{
		ID:               user.ID,
		Email:            user.Email,
		Name:             user.Name,
		Role:             string(user.Role),
		Enabled:          user.Enabled,
		EmailVerified:    user.EmailVerified,
		TwoFactorEnabled: user.TwoFactorEnabled,
		Provider:         user.Provider,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	})
}

func (h *AuthHandler) GetAllUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	out := make([]dto.UserOutput, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserOutput{
			ID:               u.ID,
			Email:            u.Email,
			Name:             u.Name,
			Role:             string(u.Role),
			Enabled:          u.Enabled,
			EmailVerified:    u.EmailVerified,
			TwoFactorEnabled: u.TwoFactorEnabled,
			Provider:         u.Provider,
			CreatedAt:        u.CreatedAt,
			UpdatedAt:        u.UpdatedAt,
		})
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *AuthHandler) UpdateUserRole(c *fiber.Ctx) error {
	var input dto.UpdateRoleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	user, err := h.userService.ChangeRole(c.Context(), c.Params("id"), input.Role)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
	})
}

func (h *AuthHandler) ForceLogout(c *fiber.Ctx) error {
	if err := h.authService.ForceLogout(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "sessions revoked"})
}
