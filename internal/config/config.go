package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Environment
	Env string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT session tokens for the admin dashboard
	JWTSecret string
	JWTExpiry time.Duration

	// Shared secret gating the public complaint form. Empty disables the gate.
	ComplaintAccessToken string

	// Submission rate limit (sliding window per client IP)
	RateLimitWindow time.Duration
	RateLimitMax    int

	// Redis backing store for the rate limiter. Empty keeps the limit in
	// process memory, which only holds for single-instance deployments.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Roster of people a complaint may reference
	RosterPath string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		Env: getEnv("APP_ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "complaintbox"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "24h"), 24*time.Hour),

		ComplaintAccessToken: getEnv("COMPLAINT_ACCESS_TOKEN", ""),

		RateLimitWindow: parseDuration(getEnv("RATE_LIMIT_WINDOW", "15m"), 15*time.Minute),
		RateLimitMax:    parseInt(getEnv("RATE_LIMIT_MAX", "3"), 3),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       parseInt(getEnv("REDIS_DB", "0"), 0),

		RosterPath: getEnv("ROSTER_PATH", "roster.json"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
