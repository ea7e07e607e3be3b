package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Completion provider
	GroqAPIKey      string
	GroqAPIURL      string
	GroqModel       string
	GroqMaxTokens   int
	GroqTemperature float64
	UpstreamTimeout time.Duration

	// HTTP surface
	CORSAllowedOrigin string
	MaxBodyBytes      int64

	// Rate limiting (0 disables)
	RateLimitPerMinute int
	RedisURL           string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		Env:                getEnvOrDefault("ENV", "development"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		GroqAPIKey:         mustGetEnv("GROQ_API_KEY"),
		GroqAPIURL:         getEnvOrDefault("GROQ_API_URL", "https://api.groq.com/openai/v1/chat/completions"),
		GroqModel:          getEnvOrDefault("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GroqMaxTokens:      getEnvAsIntOrDefault("GROQ_MAX_TOKENS", 512),
		GroqTemperature:    getEnvAsFloatOrDefault("GROQ_TEMPERATURE", 0.7),
		UpstreamTimeout:    getEnvAsDurationOrDefault("UPSTREAM_TIMEOUT", 30*time.Second),
		CORSAllowedOrigin:  getEnvOrDefault("CORS_ALLOWED_ORIGIN", "*"),
		MaxBodyBytes:       int64(getEnvAsIntOrDefault("MAX_BODY_BYTES", 1<<20)),
		RateLimitPerMinute: getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 0),
		RedisURL:           getEnvOrDefault("REDIS_URL", ""),
	}

	return cfg
}

// IsDevelopment reports whether console-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}
	return d
}
