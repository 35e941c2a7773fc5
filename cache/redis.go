package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis server. Keys are namespaced so several
// independent caches can share one database.
type Redis struct {
	rdb       *redis.Client
	namespace string
	ttl       time.Duration
}

// NewRedis creates a Redis store. namespace must not be empty.
func NewRedis(opts *redis.Options, namespace string) (*Redis, error) {
	if namespace == "" {
		return nil, fmt.Errorf("cache: namespace cannot be empty")
	}

	return &Redis{rdb: redis.NewClient(opts), namespace: namespace}, nil
}

// WithTTL sets the expiry applied by Put; 0 keeps entries forever.
func (r *Redis) WithTTL(ttl time.Duration) *Redis {
	r.ttl = ttl
	return r
}

// ResultKey returns the Redis key for a cache key.
func ResultKey(namespace, key string) string {
	return fmt.Sprintf("joltage:%s:result:%s", namespace, key)
}

// Ping verifies connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Get returns the entry for key or ErrMiss.
func (r *Redis) Get(ctx context.Context, key string) (Entry, error) {
	raw, err := r.rdb.Get(ctx, ResultKey(r.namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, ErrMiss
	}
	if err != nil {
		return Entry{}, fmt.Errorf("cache: failed to read entry from Redis: %w", err)
	}
	var e Entry
	if err = json.Unmarshal(raw, &e); err != nil {
		return Entry{}, fmt.Errorf("cache: failed to decode entry: %w", err)
	}

	return e, nil
}

// Put stores e under key.
func (r *Redis) Put(ctx context.Context, key string, e Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("cache: failed to encode entry: %w", err)
	}
	if err = r.rdb.Set(ctx, ResultKey(r.namespace, key), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache: failed to write entry to Redis: %w", err)
	}

	return nil
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
