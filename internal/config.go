package internal

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds process-level configuration. Reminder/SMTP settings live
// in the database settings table, not here, so the operator can edit
// them from the app without a restart.
type Config struct {
	Env         string // "dev" or "prod"
	LogLevel    string
	Port        uint16
	DatabaseUrl string
}

// NewConfig loads configuration from the environment, reading a .env
// file first when one exists.
func NewConfig() (*Config, error) {
	// Missing .env is fine; the environment may be fully set already.
	_ = godotenv.Load()

	cfg := &Config{
		Env:         getEnv("ENV", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Port:        3080,
		DatabaseUrl: os.Getenv("DATABASE_URL"),
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = uint16(p)
	}

	if cfg.DatabaseUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
