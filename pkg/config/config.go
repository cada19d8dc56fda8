package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	dydbstore "github.com/chris/apartment-rentals/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

// Config holds the settings shared by the API server and the lambdas.
type Config struct {
	Tables dydbstore.Tables

	HTTPPort string
	// QueueURL is the SQS queue receiving payment events. Empty disables events.
	QueueURL string
	// WebSocketEndpoint is the API Gateway management endpoint. Empty means the
	// server pushes updates to its own /ws clients instead.
	WebSocketEndpoint string

	JWTSecret    string
	JWTIssuer    string
	JWTClockSkew time.Duration

	// RateLimit is the sustained number of write requests per second allowed
	// per client; RateBurst the burst on top of it.
	RateLimit float64
	RateBurst int

	ReconcileMaxAge time.Duration
	LogLevel        string
}

// Load reads a .env file when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Tables: dydbstore.Tables{
			Listings:             os.Getenv("DYNAMODB_LISTINGS_TABLE_NAME"),
			Reservations:         os.Getenv("DYNAMODB_RESERVATIONS_TABLE_NAME"),
			Payments:             os.Getenv("DYNAMODB_PAYMENTS_TABLE_NAME"),
			Users:                os.Getenv("DYNAMODB_USERS_TABLE_NAME"),
			WebsocketConnections: getEnvOrDefault("DYNAMODB_WEBSOCKET_CONNECTIONS_TABLE_NAME", "websocket_connections"),
		},
		HTTPPort:          getEnvOrDefault("HTTP_PORT", "8080"),
		QueueURL:          os.Getenv("SQS_QUEUE_URL"),
		WebSocketEndpoint: os.Getenv("WEBSOCKET_API_ENDPOINT"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTIssuer:         os.Getenv("JWT_ISSUER"),
		JWTClockSkew:      getEnvAsDurationOrDefault("JWT_CLOCK_SKEW", 30*time.Second),
		RateLimit:         getEnvAsFloatOrDefault("RATE_LIMIT_RPS", 5),
		RateBurst:         getEnvAsIntOrDefault("RATE_LIMIT_BURST", 10),
		ReconcileMaxAge:   getEnvAsDurationOrDefault("RECONCILE_MAX_AGE", 5*time.Minute),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
	}

	var missing []string
	for name, value := range map[string]string{
		"DYNAMODB_LISTINGS_TABLE_NAME":     cfg.Tables.Listings,
		"DYNAMODB_RESERVATIONS_TABLE_NAME": cfg.Tables.Reservations,
		"DYNAMODB_PAYMENTS_TABLE_NAME":     cfg.Tables.Payments,
		"DYNAMODB_USERS_TABLE_NAME":        cfg.Tables.Users,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, fmt.Errorf("missing table name environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// RequireJWTSecret fails when the API cannot verify tokens.
func (c *Config) RequireJWTSecret() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable not set")
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Printf("Environment variable %s is not an integer, using default value", key)
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Environment variable %s is not a number, using default value", key)
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Environment variable %s is not a duration, using default value", key)
	}
	return defaultValue
}
