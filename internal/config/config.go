package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	NodeEnv   string
	Port      string
	JWTSecret string
	Database  DatabaseConfig
	ERP       ERPConfig
	Layout    LayoutConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host       string
	Port       string
	Username   string
	Password   string
	Database   string
	LogQueries bool
}

// ERPConfig holds the upstream ERP catalog connection settings
type ERPConfig struct {
	URL          string
	Database     string
	Username     string
	Password     string
	SyncInterval int // in minutes
}

// LayoutConfig selects the persistence backend for planogram writes. With an
// empty URL the local database is authoritative; with a URL set, writes go to
// the upstream backend instead.
type LayoutConfig struct {
	URL    string
	APIKey string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	nodeEnv := getEnv("NODE_ENV", "development")

	return &Config{
		NodeEnv:   nodeEnv,
		Port:      getEnv("PORT", "3310"),
		JWTSecret: jwtSecret,
		Database: DatabaseConfig{
			Host:       getEnv("PG_HOST", "localhost"),
			Port:       getEnv("PG_PORT", "5432"),
			Username:   getEnv("PG_USERNAME", "postgres"),
			Password:   os.Getenv("PG_PASSWORD"),
			Database:   getEnv("PG_DATABASE", "planogo"),
			LogQueries: nodeEnv == "development",
		},
		ERP: ERPConfig{
			URL:          os.Getenv("ERP_URL"),
			Database:     os.Getenv("ERP_DATABASE"),
			Username:     os.Getenv("ERP_USERNAME"),
			Password:     os.Getenv("ERP_PASSWORD"),
			SyncInterval: getEnvInt("ERP_SYNC_INTERVAL", 15),
		},
		Layout: LayoutConfig{
			URL:    os.Getenv("LAYOUT_URL"),
			APIKey: os.Getenv("LAYOUT_API_KEY"),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
