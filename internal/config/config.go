package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the configuration values for the application.
type Config struct {
	ListenPort         string
	PostgresURI        string // empty keeps everything in memory
	LogLevel           string
	LogFormat          string
	FeeTablePath       string
	CORSAllowedOrigins []string
	GinMode            string
}

// LoadConfig loads configuration from environment variables or uses default values.
func LoadConfig() (*Config, error) {
	logFormat := getEnv("LOG_FORMAT", "json")
	if logFormat != "json" && logFormat != "text" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want json or text", logFormat)
	}

	return &Config{
		ListenPort:         getEnv("LISTEN_PORT", "8080"),
		PostgresURI:        os.Getenv("POSTGRES_URI"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          logFormat,
		FeeTablePath:       os.Getenv("FEE_TABLE_PATH"),
		CORSAllowedOrigins: getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		GinMode:            getEnv("GIN_MODE", "release"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
