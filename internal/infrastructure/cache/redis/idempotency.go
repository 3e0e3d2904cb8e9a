// Package redis keeps checkout idempotency keys in Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/internal/config"
)

const (
	keyPrefix    = "idempotency-key:"
	pendingValue = "pending"
)

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// IdempotencyStore claims a key with SETNX. A claimed key holds "pending"
// until the checkout finishes, then the order id, and expires after ttl.
type IdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, redisKey(key), pendingValue, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reserve %s: %w", key, err)
	}
	return ok, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key string, orderID uuid.UUID) error {
	if err := s.rdb.Set(ctx, redisKey(key), orderID.String(), s.ttl).Err(); err != nil {
		return fmt.Errorf("complete %s: %w", key, err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("release %s: %w", key, err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *IdempotencyStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func redisKey(key string) string {
	return keyPrefix + key
}
