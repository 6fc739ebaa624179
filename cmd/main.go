package main

import (
	"context"
	"os"
	"time"

	"github.com/FirstOnDie/authforge/config"
	"github.com/FirstOnDie/authforge/db"
	"github.com/FirstOnDie/authforge/internal/auth/domain"
	"github.com/FirstOnDie/authforge/internal/auth/handler"
	postgres "github.com/FirstOnDie/authforge/internal/auth/repository/postgres"
	"github.com/FirstOnDie/authforge/internal/auth/service"
	"github.com/FirstOnDie/authforge/internal/logging"
	"github.com/FirstOnDie/authforge/internal/mailer"
	"github.com/FirstOnDie/authforge/internal/ratelimit"
	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(cfg.Env)
	ctx := context.Background()

	if err := db.Migrate(ctx, cfg.DBURL); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewRepository(pool)

	tokenService, err := service.NewTokenService(cfg.AccessTokenSecret, cfg.AccessExpiryMin)
	if err != nil {
		logger.Error("invalid token configuration", "error", err)
		os.Exit(1)
	}

	refreshService := service.NewRefreshTokenService(repo, cfg.RefreshExpiryMin, logger)
	totpService := service.NewTotpService(cfg.TOTPIssuer)

	var notifier domain.Notifier
	if cfg.SMTPHost != "" {
		notifier = mailer.NewSMTPMailer(cfg, logger)
	} else {
		notifier = mailer.NewLogMailer(cfg, logger)
	}

	authService := service.NewAuthService(repo, refreshService, tokenService, totpService, notifier, cfg, logger)
	userService := service.NewUserService(repo, totpService, cfg, logger)

	authHandler := handler.NewAuthHandler(authService, userService)
	twoFactorHandler := handler.NewTwoFactorHandler(userService)

	var limit fiber.Handler
	if cfg.RateLimitEnabled {
		limiter := ratelimit.New(cfg.RateLimitMaxAttempts,
			time.Duration(cfg.RateLimitWindowSec)*time.Second)
		limit = handler.RateLimit(limiter)
	}

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler, twoFactorHandler, tokenService, userService, limit)

	logger.Info("listening", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
