package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/FirstOnDie/authforge/internal/auth/domain"
	"github.com/FirstOnDie/authforge/internal/auth/service"
	"github.com/FirstOnDie/authforge/internal/ratelimit"
	"github.com/gofiber/fiber/v2"
)

const localsEmailKey = "email"

// authenticate extracts and verifies the bearer token, returning the
// subject email.
func authenticate(c *fiber.Ctx, tokens domain.TokenGenerator) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", errors.New("missing bearer token")
	}

	email, err := tokens.Verify(strings.TrimPrefix(header, prefix))
	if err != nil {
		return "", errors.New("invalid access token")
	}

	return email, nil
}

// RequireAuth guards a route with bearer-token authentication, storing
// the subject email in the request locals for downstream handlers.
func RequireAuth(tokens domain.TokenGenerator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := authenticate(c, tokens)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}

		c.Locals(localsEmailKey, email)
		return c.Next()
	}
}

// RequireRole verifies the bearer token and additionally checks the
// principal's role.
func RequireRole(tokens domain.TokenGenerator, users *service.UserService, role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := authenticate(c, tokens)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}

		user, err := users.GetUserByEmail(c.Context(), email)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		if user.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		}

		c.Locals(localsEmailKey, email)
		return c.Next()
	}
}

// RateLimit applies the fixed-window limiter keyed by client address and
// answers 429 with a Retry-After hint when the window is exhausted.
func RateLimit(limiter *ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, retryAfter := limiter.Allow(c.IP())
		if !ok {
			secs := int(retryAfter.Seconds())
			if secs < 1 {
				secs = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":               "too many requests",
				"retry_after_seconds": secs,
			})
		}
		return c.Next()
	}
}
