package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// Redis (optional; backs the rate limiter when set)
	RedisURL string

	// OIDC (token verification only; issuance happens elsewhere)
	OIDCIssuer   string
	OIDCClientID string

	// Audit gate: per-request capability code required on audit surfaces
	AuditAccessCode string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Activity log retention in days; 0 disables pruning
	ActivityRetentionDays int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":5000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:5000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/contactdb?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", ""),

		OIDCIssuer:   getEnv("OIDC_ISSUER", ""),
		OIDCClientID: getEnv("OIDC_CLIENT_ID", ""),

		AuditAccessCode: getEnv("AUDIT_ACCESS_CODE", ""),

		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		ActivityRetentionDays: getEnvInt("ACTIVITY_RETENTION_DAYS", 0),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
