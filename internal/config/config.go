package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"daybook/internal/constants"
)

type Config struct {
	// Addr is the listen address for the HTTP API.
	Addr string
	// Database is either a SQLite file path or a postgres:// connection string.
	Database string
	// Pin gates API access when non-empty. Resolved from the environment; the
	// CLI may override it from the OS keyring.
	Pin string
	// LogDir is where rotated log files are written.
	LogDir string
	Debug  bool
}

// Load reads configuration from the environment, with .env as an optional
// overlay for development.
func Load() (*Config, error) {
	// .env file is optional in production
	_ = godotenv.Load()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	configDir := filepath.Join(home, ".config", constants.AppName)

	return &Config{
		Addr:     getEnvOrDefault("DAYBOOK_ADDR", constants.DefaultAddr),
		Database: getEnvOrDefault("DAYBOOK_DB", filepath.Join(configDir, constants.AppName+".db")),
		Pin:      os.Getenv("DAYBOOK_PIN"),
		LogDir:   getEnvOrDefault("DAYBOOK_LOG_DIR", filepath.Join(configDir, "logs")),
		Debug:    isTruthy(os.Getenv("DAYBOOK_DEBUG")),
	}, nil
}

// IsPostgres reports whether the configured database is a postgres DSN rather
// than a SQLite path.
func (c *Config) IsPostgres() bool {
	return strings.HasPrefix(c.Database, "postgres://") || strings.HasPrefix(c.Database, "postgresql://")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func isTruthy(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
