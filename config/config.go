package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string
	// Database; empty DBUrl selects the in-memory store
	DBUrl          string
	MigrationsPath string
	RunMigrations  bool
	// Collaborators
	IdentityServiceURL             string
	ListingServiceURL              string // empty: the local event store is the listing directory
	DirectoryTimeout               time.Duration
	DirectoryRateLimit             float64
	DirectoryUnreachableAsNotFound bool
	ServiceTokenSecret             string
	// HTTP
	FrontendURL string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds  int
	RateLimitWriteThreshold int
}

// Warnings lists configuration that is valid but probably unintended. It is
// reported by main once the logger is up.
func (c *Config) Warnings() []string {
	var out []string
	if c.DBUrl == "" {
		out = append(out, "DATABASE_URL is missing. Data is kept in memory and lost on restart.")
	}
	if c.UpstashRedisURL == "" {
		out = append(out, "UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if c.ServiceTokenSecret == "" {
		out = append(out, "SERVICE_TOKEN_SECRET not configured. Directory calls are sent without a bearer token.")
	}
	return out
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		// Database
		DBUrl:          getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		RunMigrations:  getEnvBool("RUN_MIGRATIONS", true),
		// Collaborators; trailing slash trimmed so ids join cleanly
		IdentityServiceURL:             strings.TrimRight(getEnv("IDENTITY_SERVICE_URL", "http://localhost:8081/api/users"), "/"),
		ListingServiceURL:              strings.TrimRight(getEnv("LISTING_SERVICE_URL", ""), "/"),
		DirectoryTimeout:               time.Duration(getEnvInt("DIRECTORY_TIMEOUT_SECONDS", 5)) * time.Second,
		DirectoryRateLimit:             float64(getEnvInt("DIRECTORY_RATE_LIMIT", 50)),
		DirectoryUnreachableAsNotFound: getEnvBool("DIRECTORY_UNREACHABLE_AS_NOT_FOUND", false),
		ServiceTokenSecret:             getEnv("SERVICE_TOKEN_SECRET", ""),
		// HTTP
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:  getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitWriteThreshold: getEnvInt("RATE_LIMIT_WRITE_THRESHOLD", 30),
	}

	if cfg.DirectoryTimeout <= 0 {
		cfg.DirectoryTimeout = 5 * time.Second
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
