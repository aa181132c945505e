package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "landregistry/pkg/platform/strings"
)

// Server captures process-level configuration. Backends with an empty
// address run on their in-process implementations, so a bare binary still
// serves the full API.
type Server struct {
	Addr          string
	JWTSigningKey string

	Postgres PostgresConfig
	Redis    RedisConfig
	IPFS     IPFSConfig
	Kafka    KafkaConfig
}

// PostgresConfig holds the canonical store settings. An empty DSN selects the
// in-memory store.
type PostgresConfig struct {
	DSN string
}

// RedisConfig holds the live ledger connection settings. An empty URL selects
// the mock ledger.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// IPFSConfig holds the document store settings. An empty URL selects the
// in-memory document store.
type IPFSConfig struct {
	URL     string
	Timeout time.Duration
}

// KafkaConfig holds the audit publisher settings. No brokers means audit
// events stay on the in-process store.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("LAND_REGISTRY_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default, must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	topic := os.Getenv("AUDIT_TOPIC")
	if topic == "" {
		topic = "landregistry.audit"
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		Postgres: PostgresConfig{
			DSN: os.Getenv("POSTGRES_DSN"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("LEDGER_REDIS_URL"),
			PoolSize:     envInt("LEDGER_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("LEDGER_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDuration("LEDGER_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("LEDGER_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("LEDGER_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		IPFS: IPFSConfig{
			URL:     os.Getenv("IPFS_API_URL"),
			Timeout: envDuration("IPFS_TIMEOUT", 30*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: envList("KAFKA_BROKERS"),
			Topic:   topic,
		},
	}
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	return pstrings.DedupeAndTrim(strings.Split(raw, ","))
}
