// Package config centralises configuration parsing for the sign-up service.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration values for the sign-up service.
type Config struct {
	HTTPAddress       string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	LogLevel          string
	LogFormat         string
	SeedFile          string // Empty selects the built-in seed.
	StaticDir         string // Empty disables the /static/ mount.
	CORSAllowedOrigin string
	KafkaBrokers      []string // Empty disables roster events.
	RosterEventsTopic string
}

// Load reads an optional .env file and environment variables into Config, applying
// defaults suited to local dev. Variables already set in the environment win over .env.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddress:       getEnv("HTTP_ADDRESS", ":8080"),
		ReadTimeout:       getDurationEnv("HTTP_READ_TIMEOUT", 5*time.Second),
		WriteTimeout:      getDurationEnv("HTTP_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:       getDurationEnv("HTTP_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   getDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		SeedFile:          getEnv("SEED_FILE", ""),
		StaticDir:         getEnv("STATIC_DIR", ""),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:5173"),
		KafkaBrokers:      splitAndTrim(getEnv("KAFKA_BROKERS", "")),
		RosterEventsTopic: getEnv("ROSTER_EVENTS_TOPIC", "activity_roster_events"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
