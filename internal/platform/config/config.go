package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Registry backends selectable through REGISTRY_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
	Log             LogConfig
	Registry        RegistryConfig
	Postgres        PostgresConfig
	Redis           RedisConfig
	Audit           AuditConfig
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  slog.Level
	Format string // json or text
}

// RegistryConfig picks the store backing the simulated registry.
type RegistryConfig struct {
	Backend string
}

// PostgresConfig configures the database/sql pool.
type PostgresConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig configures the go-redis client. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AuditConfig configures the Kafka audit sink. With no brokers, audit events
// stay in process.
type AuditConfig struct {
	Brokers []string
	Topic   string
}

// Load reads an optional .env file and then builds the config from the
// environment.
func Load() (Server, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Server{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var errs []string
	duration := func(key string, fallback time.Duration) time.Duration {
		raw := os.Getenv(key)
		if raw == "" {
			return fallback
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
			return fallback
		}
		return d
	}
	integer := func(key string, fallback int) int {
		raw := os.Getenv(key)
		if raw == "" {
			return fallback
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs = append(errs, fmt.Sprintf("%s: must be a non-negative integer", key))
			return fallback
		}
		return n
	}

	cfg := Server{
		Addr:            getEnv("FAYDA_ADDR", ":8080"),
		ShutdownTimeout: duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		Log: LogConfig{
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
		Registry: RegistryConfig{
			Backend: strings.ToLower(getEnv("REGISTRY_BACKEND", BackendMemory)),
		},
		Postgres: PostgresConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: integer("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns: integer("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Audit: AuditConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("AUDIT_TOPIC", "fayda.audit"),
		},
	}

	if err := cfg.Log.Level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL: %v", err))
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT: unsupported format %q", cfg.Log.Format))
	}

	switch cfg.Registry.Backend {
	case BackendMemory:
	case BackendPostgres:
		if cfg.Postgres.URL == "" {
			errs = append(errs, "DATABASE_URL: required for the postgres registry backend")
		}
	case BackendRedis:
		if cfg.Redis.URL == "" {
			errs = append(errs, "REDIS_URL: required for the redis registry backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("REGISTRY_BACKEND: unknown backend %q", cfg.Registry.Backend))
	}

	if len(errs) > 0 {
		return Server{}, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
