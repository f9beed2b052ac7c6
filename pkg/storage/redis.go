package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a RedisBackend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// RedisBackend stores the blob under a single Redis key.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend connects to Redis and verifies the connection.
func NewRedisBackend(ctx context.Context, cfg RedisConfig) (*RedisBackend, error) {
	if cfg.Key == "" {
		return nil, fmt.Errorf("storage: empty redis key")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return &RedisBackend{client: client, key: cfg.Key}, nil
}

// Read returns the value stored under the key.
func (b *RedisBackend) Read(ctx context.Context) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return data, err
}

// Write replaces the value stored under the key. No expiry is set.
func (b *RedisBackend) Write(ctx context.Context, data []byte) error {
	return b.client.Set(ctx, b.key, data, 0).Err()
}

// Location returns the address and key.
func (b *RedisBackend) Location() string {
	return fmt.Sprintf("redis://%s/%d#%s", b.client.Options().Addr, b.client.Options().DB, b.key)
}

// Close closes the Redis connection pool.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}

var _ Backend = (*RedisBackend)(nil)
