package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries process-level settings. Values come from the
// environment, with an optional .env file for local development.
type Config struct {
	Environment string
	HTTPAddr    string

	DatabaseDSN     string
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBConnMaxLife   time.Duration
	MigrateOnStart  bool
	SeedOnStart     bool
	ReceiptSenderID string

	DashboardCacheTTL time.Duration
}

func Load() Config {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	return Config{
		Environment:       getString("APP_ENV", "development"),
		HTTPAddr:          getString("HTTP_ADDR", ":3000"),
		DatabaseDSN:       getString("DATABASE_DSN", "host=localhost user=postgres dbname=hostelmgr port=5432 sslmode=disable"),
		DBMaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLife:     getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		MigrateOnStart:    getBool("MIGRATE_ON_START", true),
		SeedOnStart:       getBool("SEED_ON_START", true),
		ReceiptSenderID:   getString("RECEIPT_SENDER_ID", "Hostel"),
		DashboardCacheTTL: getDuration("DASHBOARD_CACHE_TTL", 30*time.Second),
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
