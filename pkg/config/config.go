package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string
	LogJSON  bool

	// SQLite (default backend for the CLI)
	DatabasePath string

	// PostgreSQL (server deployments; empty means use SQLite)
	DatabaseURL      string
	DatabaseMaxConns int // 0 leaves the pool default

	// Redis (pending-notification registry; empty means in-memory)
	RedisURL string

	// RabbitMQ (delivery channel + domain events; empty means in-process)
	RabbitMQURL string

	// Scheduler worker
	PassInterval      time.Duration
	RebalanceInterval time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogJSON:  getBoolEnv("LOG_JSON", false),

		DatabasePath:     getEnv("NUDGE_DB_PATH", ""),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabaseMaxConns: getIntEnv("DATABASE_MAX_CONNS", 0),
		RedisURL:         getEnv("REDIS_URL", ""),
		RabbitMQURL:      getEnv("RABBITMQ_URL", ""),

		PassInterval:      getDurationEnv("NUDGE_PASS_INTERVAL", time.Hour),
		RebalanceInterval: getDurationEnv("NUDGE_REBALANCE_INTERVAL", 24*time.Hour),
	}

	return cfg, nil
}

// IsDevelopment returns true when running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// UsePostgres returns true when a PostgreSQL URL is configured.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
