package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultEnv                   = "development"
	DefaultPort                  = "8080"
	DefaultAccessTokenExpiryMin  = 15
	DefaultRefreshTokenExpiryMin = 10080
	DefaultRateLimitMaxAttempts  = 5
	DefaultRateLimitWindowSec    = 60
	DefaultTOTPIssuer            = "AuthForge"
	DefaultAppName               = "AuthForge"
	DefaultAppURL                = "http://localhost:4000"
	DefaultFromEmail             = "noreply@authforge.local"
)

type Config struct {
	Env               string
	Port              string
	DBURL             string
	AccessTokenSecret string
	AccessExpiryMin   int
	RefreshExpiryMin  int

	// Feature toggles, read as an immutable snapshot at startup.
	TwoFactorEnabled         bool
	EmailVerificationEnabled bool
	RateLimitEnabled         bool

	RateLimitMaxAttempts int
	RateLimitWindowSec   int

	TOTPIssuer string

	AppName   string
	AppURL    string
	FromEmail string
	SMTPHost  string
	SMTPPort  string
	SMTPUser  string
	SMTPPass  string
}

func Load() *Config {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	return &Config{
		Env:               getEnv("ENV", DefaultEnv),
		Port:              getEnv("PORT", DefaultPort),
		DBURL:             mustGetEnv("DB_URL"),
		AccessTokenSecret: mustGetEnv("ACCESS_TOKEN_SECRET"),
		AccessExpiryMin:   getEnvAsInt("ACCESS_TOKEN_EXPIRY", DefaultAccessTokenExpiryMin),
		RefreshExpiryMin:  getEnvAsInt("REFRESH_TOKEN_EXPIRY", DefaultRefreshTokenExpiryMin),

		TwoFactorEnabled:         getEnvAsBool("FEATURE_TWO_FACTOR", true),
		EmailVerificationEnabled: getEnvAsBool("FEATURE_EMAIL_VERIFICATION", true),
		RateLimitEnabled:         getEnvAsBool("FEATURE_RATE_LIMITING", true),

		RateLimitMaxAttempts: getEnvAsInt("RATE_LIMIT_MAX_ATTEMPTS", DefaultRateLimitMaxAttempts),
		RateLimitWindowSec:   getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", DefaultRateLimitWindowSec),

		TOTPIssuer: getEnv("TOTP_ISSUER", DefaultTOTPIssuer),

		AppName:   getEnv("APP_NAME", DefaultAppName),
		AppURL:    getEnv("APP_URL", DefaultAppURL),
		FromEmail: getEnv("FROM_EMAIL", DefaultFromEmail),
		SMTPHost:  getEnv("SMTP_HOST", ""),
		SMTPPort:  getEnv("SMTP_PORT", "587"),
		SMTPUser:  getEnv("SMTP_USER", ""),
		SMTPPass:  getEnv("SMTP_PASS", ""),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %t", key, defaultVal)
		return defaultVal
	}
	return val
}
