package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string
	JWTSecret    string
	ClientURL    string // Allowed CORS origin for the frontend
}

// Load loads configuration from environment variables or sets defaults.
// JWT_SECRET has no default: a fallback secret would let anyone mint valid
// session tokens.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "5001")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return &Config{
		ServerPort:   port,
		DatabasePath: getEnv("DATABASE_PATH", "./typetester.db"),
		JWTSecret:    secret,
		ClientURL:    getEnv("CLIENT_URL", "http://localhost:3000"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
