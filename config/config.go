package config

import (
	"os"
)

// Config holds the configuration values for the application.
type Config struct {
	ListenPort string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
}

// Load reads configuration from environment variables, falling back to
// development defaults when a variable is not set.
func Load() *Config {
	return &Config{
		ListenPort: getenv("PORT", "5000"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "0000"),
		DBName:     getenv("DB_NAME", "medical_db"),
		JWTSecret:  getenv("JWT_SECRET", "dev-secret-change-me"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
