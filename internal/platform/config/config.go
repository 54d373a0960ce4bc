// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures everything main needs to wire the service.
type Server struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	// Database is optional: with no URL the service runs on in-memory stores.
	DatabaseURL string

	Redis RedisConfig

	// StatusServiceURL points at the remote training-status service. Empty
	// means completions are persisted through the local store only.
	StatusServiceURL string

	// AssessmentServiceURL points at the external assessment service.
	AssessmentServiceURL string

	KafkaBrokers    []string
	KafkaAuditTopic string

	HydrateTimeout  time.Duration
	SyncInboxSize   int
	AuditBufferSize int
}

// RedisConfig holds cache connection settings. An empty URL disables the
// cache layer.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:          getEnv("TUTELA_ADDR", ":8080"),
		JWTSigningKey: getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:     getEnv("JWT_ISSUER", "tutela"),
		JWTAudience:   getEnv("JWT_AUDIENCE", "tutela-training"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			CacheTTL:     getDurationEnv("REDIS_CACHE_TTL", 5*time.Minute),
		},

		StatusServiceURL:     os.Getenv("STATUS_SERVICE_URL"),
		AssessmentServiceURL: getEnv("ASSESSMENT_SERVICE_URL", "http://localhost:9090"),

		KafkaBrokers:    getSliceEnv("KAFKA_BROKERS"),
		KafkaAuditTopic: getEnv("KAFKA_AUDIT_TOPIC", "tutela.training.audit"),

		HydrateTimeout:  getDurationEnv("HYDRATE_TIMEOUT", 5*time.Second),
		SyncInboxSize:   getIntEnv("SYNC_INBOX_SIZE", 256),
		AuditBufferSize: getIntEnv("AUDIT_BUFFER_SIZE", 256),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getSliceEnv(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
