package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration for the registrar service.
type Server struct {
	Addr          string
	LogLevel      string
	JWTSigningKey string

	// InitialCost is the claim price at startup, in minor units. Runtime
	// changes go through the registrar's cost endpoint.
	InitialCost int64

	Postgres  PostgresConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	RateLimit RateLimitConfig
}

// PostgresConfig selects the persistent store. An empty URL means the
// in-memory stores are used.
type PostgresConfig struct {
	URL string
}

// RedisConfig configures the optional Redis-backed rate limiter.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures domain event publishing. Empty brokers disable it.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RateLimitConfig bounds claim attempts per account.
type RateLimitConfig struct {
	ClaimLimit  int
	ClaimWindow time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("NAMEVAULT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	cost := envInt64("NAMEVAULT_INITIAL_COST", 100)

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}
	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "namevault.names"
	}

	return Server{
		Addr:          addr,
		LogLevel:      os.Getenv("NAMEVAULT_LOG_LEVEL"),
		JWTSigningKey: jwtSigningKey,
		InitialCost:   cost,
		Postgres: PostgresConfig{
			URL: os.Getenv("POSTGRES_URL"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     int(envInt64("REDIS_POOL_SIZE", 10)),
			MinIdleConns: int(envInt64("REDIS_MIN_IDLE_CONNS", 2)),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   topic,
		},
		RateLimit: RateLimitConfig{
			ClaimLimit:  int(envInt64("CLAIM_RATE_LIMIT", 30)),
			ClaimWindow: envDuration("CLAIM_RATE_WINDOW", time.Minute),
		},
	}
}

func envInt64(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
