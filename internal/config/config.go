package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string

	// WebSocket feed
	WSReadTimeout  time.Duration
	WSWriteTimeout time.Duration
	PingPeriod     time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64

	// Result cache
	CacheCapacity int
	CacheTTL      time.Duration

	// Staffing engine
	DefaultAnswerTimeSecs float64
	MaxSearchAgents       int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	// Parse WebSocket timeouts
	wsReadTimeout, err := strconv.Atoi(getEnv("WS_READ_TIMEOUT", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid WS_READ_TIMEOUT: %w", err)
	}
	config.WSReadTimeout = time.Duration(wsReadTimeout) * time.Second

	wsWriteTimeout, err := strconv.Atoi(getEnv("WS_WRITE_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid WS_WRITE_TIMEOUT: %w", err)
	}
	config.WSWriteTimeout = time.Duration(wsWriteTimeout) * time.Second

	// Calculate WebSocket constants
	config.PongWait = config.WSReadTimeout
	config.PingPeriod = (config.PongWait * 9) / 10 // Must be less than pongWait
	config.WriteWait = config.WSWriteTimeout
	config.MaxMessageSize = 512

	config.CacheCapacity, err = strconv.Atoi(getEnv("CACHE_CAPACITY", "1024"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_CAPACITY: %w", err)
	}

	cacheTTL, err := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "300"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_SECONDS: %w", err)
	}
	config.CacheTTL = time.Duration(cacheTTL) * time.Second

	config.DefaultAnswerTimeSecs, err = strconv.ParseFloat(getEnv("DEFAULT_ANSWER_TIME_SECONDS", "20"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_ANSWER_TIME_SECONDS: %w", err)
	}
	if config.DefaultAnswerTimeSecs < 0 {
		return nil, fmt.Errorf("invalid DEFAULT_ANSWER_TIME_SECONDS: must not be negative")
	}

	config.MaxSearchAgents, err = strconv.Atoi(getEnv("MAX_SEARCH_AGENTS", "10000"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_SEARCH_AGENTS: %w", err)
	}

	// Trim spaces from allowed origins
	for i, origin := range config.AllowedOrigins {
		config.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
