package handler

import (
	"github.com/FirstOnDie/authforge/internal/auth/domain"
	"github.com/FirstOnDie/authforge/internal/auth/service"
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API. The rate limiter guards only the
// unauthenticated credential endpoints; limit may be nil when the
// feature is off.
func RegisterRoutes(
	app *fiber.App,
	h *AuthHandler,
	tfh *TwoFactorHandler,
	tokens domain.TokenGenerator,
	users *service.UserService,
	limit fiber.Handler,
) {
	auth := app.Group("/api/v1/auth")
	if limit != nil {
		auth.Use(limit)
	}
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/2fa/verify", h.VerifyTwoFactor)
	auth.Post("/refresh", h.Refresh)
	auth.Get("/verify-email", h.VerifyEmail)
	auth.Post("/forgot-password", h.ForgotPassword)
	auth.Post("/reset-password", h.ResetPassword)

	app.Post("/api/v1/logout", RequireAuth(tokens), h.Logout)
	app.Get("/api/v1/me", RequireAuth(tokens), h.Me)

	twofa := app.Group("/api/v1/2fa", RequireAuth(tokens))
	twofa.Post("/setup", tfh.Setup)
	twofa.Post("/enable", tfh.Enable)
	twofa.Post("/disable", tfh.Disable)

	// Admin-only endpoints
	admin := app.Group("/api/v1/admin", RequireRole(tokens, users, domain.RoleAdmin))
	admin.Get("/users", h.GetAllUsers)
	admin.Patch("/user/:id/role", h.UpdateUserRole)
	admin.Delete("/user/:id/sessions", h.ForceLogout)
}
