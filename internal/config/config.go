// Package config loads runtime configuration from environment variables.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// SeedAdmin is the bootstrap administrator inserted at first startup if no
// user with that username exists yet. Historically these credentials were
// hardcoded in the login path; they are plain seed data now.
type SeedAdmin struct {
	Username string
	Password string
	Name     string
}

// Config holds everything the server needs at startup.
type Config struct {
	Port        int
	DBPath      string
	JWTSecret   string
	TokenTTL    time.Duration
	SeedAdmin   SeedAdmin
	CorsOrigins []string
}

// Load reads configuration from the environment. Only JWT_SECRET is
// mandatory; everything else has a default suitable for local use.
func Load() (Config, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return Config{}, errors.New("config: JWT_SECRET must be set")
	}

	return Config{
		Port:      envOrInt("PORT", 8080),
		DBPath:    envOr("DB_PATH", "data/portal.db"),
		JWTSecret: secret,
		TokenTTL:  time.Duration(envOrInt("TOKEN_TTL_HOURS", 168)) * time.Hour,
		SeedAdmin: SeedAdmin{
			Username: envOr("SEED_ADMIN_USERNAME", "admin"),
			Password: envOr("SEED_ADMIN_PASSWORD", "admin123"),
			Name:     envOr("SEED_ADMIN_NAME", "Administrateur Principal"),
		},
		CorsOrigins: parseCSV(envOr("CORS_ORIGINS", "*")),
	}, nil
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if value := strings.TrimSpace(part); value != "" {
			items = append(items, value)
		}
	}
	return items
}
