package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	AppEnv      string
	LogLevel    string
	Port        string
	PublicURL   string
	APIURL      string
	CORSOrigins []string
	RateLimit   RateLimitConfig
	Database    DatabaseConfig
	Redis       RedisConfig
}

// DatabaseConfig selects and configures the SQL store.
type DatabaseConfig struct {
	Driver     string // sqlite or postgres
	SQLitePath string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
}

// RedisConfig enables the Redis cache when Host is set.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// RateLimitConfig bounds API requests per client IP.
type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Load loads configuration from environment variables, reading a .env file
// first when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from the current environment only.
func FromEnv() (*Config, error) {
	port := getEnv("PORT", "5501")

	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		Port:        port,
		PublicURL:   strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:"+port), "/"),
		APIURL:      strings.TrimRight(getEnv("LOADMAP_API_URL", "http://localhost:"+port), "/"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			SQLitePath: getEnv("SQLITE_PATH", "loadmaps.db"),
			Host:       getEnv("PG_HOST", "localhost"),
			Port:       getEnv("PG_PORT", "5432"),
			User:       getEnv("PG_USER", "postgres"),
			Password:   os.Getenv("PG_PASSWORD"),
			Name:       getEnv("PG_DB", "loadmaps"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}

	var err error
	if cfg.RateLimit.PerSecond, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimit.Burst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "30")); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}

	switch cfg.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, cfg.Database.Driver)
	}

	return cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// PostgresDSN returns the connection string for the PG_* settings.
func (d DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", d.User, d.Password, d.Host, d.Port, d.Name)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
