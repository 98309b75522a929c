package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AuthMode selects between full per-user authentication and an anonymous
// single-identity mode where every request resolves to the same user.
type AuthMode string

const (
	AuthEnforced AuthMode = "enforced"
	AuthDisabled AuthMode = "disabled"
)

const insecureDefaultSecret = "dev-secret-change-in-production"

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig

	// Environment is "development" unless APP_ENV says otherwise.
	Environment string
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	// DSN selects the Postgres backend when set; empty means the embedded
	// in-memory store.
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

type RedisConfig struct {
	// Addr enables the Redis-backed rate limiter when set.
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

type AuthConfig struct {
	Mode AuthMode
	// JWTSecret signs bearer tokens. Injected into the token manager at
	// construction time, never read from globals elsewhere.
	JWTSecret string
	TokenTTL  time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func Load() (*Config, error) {
	// Load .env if it exists (local dev), ignore if not (containers use real env)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8000"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DATABASE_URL", ""),
			MaxConns:        int32(getEnvAsInt("DB_MAX_CONNS", 25)),
			MinConns:        int32(getEnvAsInt("DB_MIN_CONNS", 5)),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", time.Hour),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Addr:         getEnv("REDIS_ADDR", ""),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
		},
		Auth: AuthConfig{
			Mode:      AuthMode(strings.ToLower(getEnv("AUTH_MODE", string(AuthEnforced)))),
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvAsDuration("TOKEN_TTL", 30*time.Minute),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
			Window:   getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Environment: getEnv("APP_ENV", "development"),
	}

	if cfg.Auth.Mode != AuthEnforced && cfg.Auth.Mode != AuthDisabled {
		return nil, fmt.Errorf("invalid AUTH_MODE %q: must be %q or %q",
			cfg.Auth.Mode, AuthEnforced, AuthDisabled)
	}

	if cfg.Auth.JWTSecret == "" || cfg.Auth.JWTSecret == insecureDefaultSecret {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET must be set to a non-default value in production")
		}
		cfg.Auth.JWTSecret = insecureDefaultSecret
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsingDefaultSecret reports whether the insecure development fallback is in
// effect, so startup can warn loudly about it.
func (c *Config) UsingDefaultSecret() bool {
	return c.Auth.JWTSecret == insecureDefaultSecret
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
