package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env     string
	Server  ServerConfig
	Backend BackendConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Cart    CartConfig
	Catalog CatalogConfig
	Session SessionConfig
}

type ServerConfig struct {
	Port               string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
}

type BackendConfig struct {
	URL                string
	Timeout            time.Duration
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

// RedisConfig with an empty Addr selects the in-memory session store and
// disables the catalog cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig with no brokers disables order events.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type CartConfig struct {
	IdleTTL time.Duration
}

type CatalogConfig struct {
	PageTTL  time.Duration
	IndexTTL time.Duration
}

type SessionConfig struct {
	TTL          time.Duration
	CookieSecure bool
}

func Load() *Config {
	// a missing .env file is fine; the process environment wins either way
	_ = godotenv.Load()

	return &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:               getEnv("HTTP_PORT", "8080"),
			RequestTimeout:     getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			MaxRequestBodySize: int64(getEnvInt("MAX_REQUEST_BODY_SIZE", 1<<20)),
		},
		Backend: BackendConfig{
			URL:                getEnv("BACKEND_URL", "http://localhost:4003"),
			Timeout:            getEnvDuration("BACKEND_TIMEOUT", 10*time.Second),
			BreakerMaxFailures: uint32(getEnvInt("BREAKER_MAX_FAILURES", 5)),
			BreakerOpenTimeout: getEnvDuration("BREAKER_OPEN_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS"),
			Topic:   getEnv("KAFKA_TOPIC", "storefront-orders"),
		},
		Cart: CartConfig{
			IdleTTL: getEnvDuration("CART_IDLE_TTL", 2*time.Hour),
		},
		Catalog: CatalogConfig{
			PageTTL:  getEnvDuration("CATALOG_TTL", 60*time.Second),
			IndexTTL: getEnvDuration("INDEX_TTL", 120*time.Second),
		},
		Session: SessionConfig{
			TTL:          getEnvDuration("SESSION_TTL", 24*time.Hour),
			CookieSecure: getEnvBool("COOKIE_SECURE", false),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
