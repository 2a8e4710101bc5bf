package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds environment-driven configuration for the prime count server.
type Config struct {
	Port           string
	MongoURI       string
	MongoDB        string
	StoreEnabled   bool
	RateLimitRPM   int
	CacheTTL       time.Duration
	CountTimeout   time.Duration
	MaxLimit       int
	MaxConcurrency int
	CountWorkers   int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getint ignores non-positive values as well as unparsable ones.
func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Load loads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		Port:           getenv("PORT", "8080"),
		MongoURI:       getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getenv("MONGO_DB", "primecount"),
		StoreEnabled:   getbool("STORE_ENABLED", true),
		RateLimitRPM:   getint("RATE_LIMIT_RPM", 60),
		CacheTTL:       getdur("CACHE_TTL", 10*time.Minute),
		CountTimeout:   getdur("COUNT_TIMEOUT", 5*time.Second),
		MaxLimit:       getint("MAX_LIMIT", 10_000_000),
		MaxConcurrency: getint("MAX_CONCURRENCY", 4),
		CountWorkers:   getint("COUNT_WORKERS", 4),
	}
}
