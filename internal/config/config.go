package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything read from the environment at startup.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	CORSOrigins string
	StaticDir   string
	ViewsDir    string
}

// Load reads .env (if present) and the process environment. DATABASE_URL is
// the only required variable; JWT_SECRET left empty disables the auth gate.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		// Missing .env is fine in containerized deployments; everything can
		// come from the real environment.
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnv("PORT", "3500"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),
		StaticDir:   getEnv("STATIC_DIR", "./public"),
		ViewsDir:    getEnv("VIEWS_DIR", "./views"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("required environment variable DATABASE_URL is not set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
