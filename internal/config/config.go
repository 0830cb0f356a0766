package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	DatabasePath   string
	JWTSecret      string
	JWTTTL         time.Duration
	CORSOrigin     string
	SeedDemoData   bool
	EventRetention time.Duration
	// Cron expression for the maintenance loop that prunes old events.
	MaintenanceSpec string
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is read first when present.
func Load() (*Config, error) {
	// Missing .env is fine; env vars win either way.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	ttlHours, err := strconv.Atoi(getEnv("JWT_TTL_HOURS", "24"))
	if err != nil {
		return nil, err
	}

	retentionDays, err := strconv.Atoi(getEnv("EVENT_RETENTION_DAYS", "30"))
	if err != nil {
		return nil, err
	}

	seed, err := strconv.ParseBool(getEnv("SEED_DEMO_DATA", "true"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:      port,
		DatabasePath:    getEnv("DATABASE_PATH", "./casavia.db"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTTTL:          time.Duration(ttlHours) * time.Hour,
		CORSOrigin:      getEnv("CORS_ORIGIN", "http://localhost:3000"),
		SeedDemoData:    seed,
		EventRetention:  time.Duration(retentionDays) * 24 * time.Hour,
		MaintenanceSpec: getEnv("MAINTENANCE_CRON", "0 3 * * *"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
