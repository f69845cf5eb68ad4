package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Database configuration
	DBType            string // mysql, postgres, sqlite, sqlserver, etc.
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Chat completion service
	ChatAPIURL   string
	ChatAPIKey   string
	ChatModel    string
	ChatFallback string

	// Places / geocoding service
	PlacesAPIURL string
	PlacesAPIKey string

	// Optional geocode cache
	RedisAddr     string
	RedisPassword string

	// Email (SES)
	AWSRegion     string
	EmailFrom     string
	EmailFromName string
	DigestSubject string

	// Red-flag evaluation
	RedFlagFeelings []string

	// Outbox worker
	OutboxInterval int // seconds
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		DBType:            getEnv("DB_TYPE", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		ChatAPIURL:        getEnv("CHAT_API_URL", "https://api.openai.com/v1"),
		ChatAPIKey:        getEnv("CHAT_API_KEY", ""),
		ChatModel:         getEnv("CHAT_MODEL", "gpt-4o-mini"),
		ChatFallback: getEnv("CHAT_FALLBACK_REPLY",
			"I'm having a little trouble responding right now. Please try again in a moment — and if you need support urgently, reach out to your care provider."),
		PlacesAPIURL:   getEnv("PLACES_API_URL", "https://maps.googleapis.com/maps/api"),
		PlacesAPIKey:   getEnv("PLACES_API_KEY", ""),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		EmailFrom:      getEnv("EMAIL_FROM", ""),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "Nestwell"),
		DigestSubject:  getEnv("DIGEST_SUBJECT", "Weekly wellness summary"),
		OutboxInterval: getEnvAsInt("OUTBOX_INTERVAL_SECONDS", 30),
	}

	cfg.RedFlagFeelings = getEnvAsList("RED_FLAG_FEELINGS",
		[]string{"pain", "overwhelmed", "disconnected", "anxious", "sad", "scared"})

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBType != "sqlite" && cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList gets a comma-separated environment variable as a normalized slice
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			values = append(values, p)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
