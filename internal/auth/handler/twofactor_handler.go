package handler

import (
	"github.com/FirstOnDie/authforge/internal/auth/dto"
	"github.com/FirstOnDie/authforge/internal/auth/service"
	"github.com/gofiber/fiber/v2"
)

// TwoFactorHandler exposes the setup/enable/disable state machine for the
// authenticated principal.
type TwoFactorHandler struct {
	userService *service.UserService
}

func NewTwoFactorHandler(userService *service.UserService) *TwoFactorHandler {
	return &TwoFactorHandler{userService: userService}
}

func (h *TwoFactorHandler) Setup(c *fiber.Ctx) error {
	email, _ := c.Locals(localsEmailKey).(string)

	out, err := h.userService.SetupTwoFactor(c.Context(), email)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *TwoFactorHandler) Enable(c *fiber.Ctx) error {
	email, _ := c.Locals(localsEmailKey).(string)

	var input dto.TwoFactorEnableInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.userService.EnableTwoFactor(c.Context(), email, input.Secret, input.Code); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "two-factor authentication enabled"})
}

func (h *TwoFactorHandler) Disable(c *fiber.Ctx) error {
	email, _ := c.Locals(localsEmailKey).(string)

	if err := h.userService.DisableTwoFactor(c.Context(), email); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "two-factor authentication disabled"})
}
