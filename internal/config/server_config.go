package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	App    AppConfig
	Server ServerConfig
	DB     PostgresConfig
	Kafka  KafkaConfig
	Redis  RedisConfig
	Auth   AuthConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Storage  string
	LogLevel string
}

type ServerConfig struct {
	Host string
	Port int
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
}

type KafkaConfig struct {
	Brokers       []string
	OrderTopic    string
	ConsumerGroup string
}

// RedisConfig is optional: an empty Addr disables checkout idempotency keys.
type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	IdempotencyTTL time.Duration
}

type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

func Load() (*Config, error) {
	cfg := read()
	return cfg, cfg.validate()
}

// LoadPostgres reads only what the admin CLI needs: no JWT secret, and the
// database is required regardless of STORAGE.
func LoadPostgres() (PostgresConfig, error) {
	db := read().DB
	return db, db.validate()
}

func read() *Config {
	_ = godotenv.Load()

	return &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "farmdirect"),
			Env:      getEnv("APP_ENV", "local"),
			Storage:  strings.ToLower(getEnv("STORAGE", StoragePostgres)),
			LogLevel: getEnv("LOG_LEVEL", ""),
		},
		Server: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnvAsInt("HTTP_PORT", 8000),
		},
		DB: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			DBName:   getEnv("POSTGRES_DB", "farmdirect"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
		},
		Kafka: KafkaConfig{
			Brokers:       splitAndTrim(getEnv("KAFKA_BOOTSTRAP_SERVERS", "")),
			OrderTopic:    getEnv("KAFKA_ORDER_TOPIC", "farmdirect.orders.placed"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "farmdirect-notifier"),
		},
		Redis: RedisConfig{
			Addr:           getEnv("REDIS_ADDR", ""),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DB:             getEnvAsInt("REDIS_DB", 0),
			IdempotencyTTL: getEnvAsDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			Issuer:    getEnv("JWT_ISSUER", ""),
		},
	}
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// MigrateURL is the DSN in the scheme golang-migrate's pgx/v5 driver registers.
func (p PostgresConfig) MigrateURL() string {
	return "pgx5" + strings.TrimPrefix(p.DSN(), "postgres")
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

/* ================= helpers ================= */

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("HTTP_PORT is invalid")
	}
	switch c.App.Storage {
	case StorageMemory:
	case StoragePostgres:
		if err := c.DB.validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.App.Storage)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is empty")
	}
	if c.Kafka.Enabled() && c.Kafka.OrderTopic == "" {
		return fmt.Errorf("KAFKA_ORDER_TOPIC is empty")
	}
	if c.Redis.Enabled() && c.Redis.IdempotencyTTL <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL must be positive")
	}
	return nil
}

func (p PostgresConfig) validate() error {
	if p.Host == "" || p.User == "" || p.DBName == "" {
		return fmt.Errorf("database config is incomplete")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if val := strings.TrimSpace(p); val != "" {
			out = append(out, val)
		}
	}
	return out
}
