package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerConfig_Address(t *testing.T) {
	tests := []struct {
		name   string
		server ServerConfig
		want   string
	}{
		{
			name:   "localhost default port",
			server: ServerConfig{Host: "localhost", Port: 8000},
			want:   "localhost:8000",
		},
		{
			name:   "bind all interfaces",
			server: ServerConfig{Host: "0.0.0.0", Port: 8080},
			want:   "0.0.0.0:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.server.Address())
		})
	}
}

func TestPostgresConfig_URLs(t *testing.T) {
	db := PostgresConfig{
		Host:     "db",
		Port:     5432,
		User:     "farm",
		Password: "secret",
		DBName:   "farmdirect",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://farm:secret@db:5432/farmdirect?sslmode=disable", db.DSN())
	assert.Equal(t, "pgx5://farm:secret@db:5432/farmdirect?sslmode=disable", db.MigrateURL())
}

func TestLoad(t *testing.T) {
	t.Run("defaults to postgres storage", func(t *testing.T) {
		t.Setenv("STORAGE", "postgres")
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "")
		t.Setenv("REDIS_ADDR", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, StoragePostgres, cfg.App.Storage)
		assert.False(t, cfg.Kafka.Enabled())
		assert.False(t, cfg.Redis.Enabled())
	})

	t.Run("memory storage with kafka and redis", func(t *testing.T) {
		t.Setenv("STORAGE", "MEMORY")
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "k1:9092, k2:9092 ,")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("IDEMPOTENCY_TTL", "90m")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, StorageMemory, cfg.App.Storage)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, 90*time.Minute, cfg.Redis.IdempotencyTTL)
	})

	t.Run("unknown storage", func(t *testing.T) {
		t.Setenv("STORAGE", "sqlite")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("STORAGE", "memory")
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("STORAGE", "memory")
		t.Setenv("HTTP_PORT", "0")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadPostgres(t *testing.T) {
	t.Run("ignores jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("POSTGRES_HOST", "db.internal")

		db, err := LoadPostgres()
		require.NoError(t, err)
		assert.Equal(t, "db.internal", db.Host)
	})

	t.Run("requires a database name", func(t *testing.T) {
		t.Setenv("POSTGRES_DB", "")

		_, err := LoadPostgres()
		assert.Error(t, err)
	})
}
