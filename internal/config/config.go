package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort         int
	DatabasePath       string
	SecretKey          string
	Algorithm          string
	AccessTokenExpire  time.Duration
	CORSAllowedOrigins []string
}

// Load loads configuration from environment variables or sets defaults.
// The signing secret has no default: running without one is a broken
// deployment, and the caller is expected to treat the error as fatal.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("SECRET_KEY must be set")
	}

	algorithm := getEnv("ALGORITHM", "HS256")
	if algorithm != "HS256" {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	expireStr := getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	expireMinutes, err := strconv.Atoi(expireStr)
	if err != nil || expireMinutes <= 0 {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES %q", expireStr)
	}

	return &Config{
		ServerPort:         port,
		DatabasePath:       getEnv("DATABASE_PATH", "./tasktrack.db"),
		SecretKey:          secret,
		Algorithm:          algorithm,
		AccessTokenExpire:  time.Duration(expireMinutes) * time.Minute,
		CORSAllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ","),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
