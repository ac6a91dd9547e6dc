package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host     string
	Port     string
	LogLevel string
	GinMode  string

	OFFAPIURL           string
	OFFUserAgent        string
	OFFTimeout          time.Duration
	OFFBreakerEnabled   bool
	OFFBreakerMinReqs   int
	OFFBreakerFailRatio float64
	OFFBreakerOpenFor   time.Duration

	MaxUploadBytes int64
	MetricsEnabled bool
}

// LoadDotEnv loads .env into the process environment. A missing file is not an error.
func LoadDotEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

func Load() Config {
	return Config{
		Host:     mustEnv("HOST", "0.0.0.0"),
		Port:     mustEnv("PORT", "5000"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),
		GinMode:  mustEnv("GIN_MODE", "release"),

		OFFAPIURL:           mustEnv("OFF_API_URL", "https://world.openfoodfacts.org/api/v2/product/{barcode}.json"),
		OFFUserAgent:        mustEnv("OFF_USER_AGENT", "ReGreenApp/1.0 - https://your-website.com (Contact: your-email@example.com)"),
		OFFTimeout:          time.Duration(mustEnvInt("OFF_TIMEOUT_SECONDS", 15)) * time.Second,
		OFFBreakerEnabled:   mustEnvBool("OFF_BREAKER_ENABLED", false),
		OFFBreakerMinReqs:   mustEnvInt("OFF_BREAKER_MIN_REQUESTS", 10),
		OFFBreakerFailRatio: mustEnvFloat("OFF_BREAKER_FAILURE_RATIO", 0.5),
		OFFBreakerOpenFor:   time.Duration(mustEnvInt("OFF_BREAKER_OPEN_SECONDS", 30)) * time.Second,

		MaxUploadBytes: int64(mustEnvInt("MAX_UPLOAD_MB", 10)) << 20,
		MetricsEnabled: mustEnvBool("METRICS_ENABLED", true),
	}
}

func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
