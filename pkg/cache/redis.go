package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/gridkit/pkg/observability"
)

// RedisConfig configures a Redis connection.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	// DialTimeout bounds connection setup; zero uses the client default.
	DialTimeout time.Duration
}

// RedisCache stores entries in Redis using native key expiry.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Username:    cfg.Username,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w: %v", cfg.Addr, ErrUnavailable, err)
	}
	return &RedisCache{client: client}, nil
}

// NewRedisCacheFromClient wraps an existing client, for example a cluster
// or sentinel client. Closing the cache closes the client.
func NewRedisCacheFromClient(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

// Get retrieves a value. redis.Nil is reported as a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.Cache().OnCacheMiss(ctx, "redis")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, classify(ctx, "get", key, err)
	}
	observability.Cache().OnCacheHit(ctx, "redis")
	return data, true, nil
}

// Set stores a value with SET, using the ttl as the key's expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	// go-redis treats negative durations as KEEPTTL.
	ttl = max(ttl, 0)
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return classify(ctx, "set", key, err)
	}
	observability.Cache().OnCacheSet(ctx, "redis", len(data))
	return nil
}

// Delete removes a key with DEL.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return classify(ctx, "del", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// classify wraps a Redis error. Failures other than context cancellation
// are marked retryable so callers can use RetryWithBackoff.
func classify(ctx context.Context, op, key string, err error) error {
	wrapped := fmt.Errorf("redis %s %s: %w", op, key, err)
	if ctx.Err() != nil {
		return wrapped
	}
	return Retryable(wrapped)
}

var _ Cache = (*RedisCache)(nil)
