// Copyright (c) 2026 RateUp. All rights reserved.

package home

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores feed snapshots as JSON.
type Cache interface {
	// Get decodes the entry under key into target and reports whether it was present.
	Get(ctx context.Context, key string, target any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// RedisCache implements [Cache] on Redis with a fixed TTL per entry.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed feed cache.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

/*
Get reads and decodes one cache entry.

Parameters:
  - context: context.Context
  - key: string
  - target: any (pointer to decode into)

Returns:
  - bool: false on a miss or an expired entry
  - error: Connectivity or decoding errors
*/
func (cache *RedisCache) Get(context context.Context, key string, target any) (bool, error) {
	raw, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_home_cache_get_failed: %w", err)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("redis_home_cache_decode_failed: %w", err)
	}
	return true, nil
}

// Set encodes value and stores it under key with the cache TTL.
func (cache *RedisCache) Set(context context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis_home_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, key, raw, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_home_cache_set_failed: %w", err)
	}
	return nil
}

// NopCache never stores anything. It stands in when Redis is not configured.
type NopCache struct{}

func (NopCache) Get(context.Context, string, any) (bool, error) { return false, nil }

func (NopCache) Set(context.Context, string, any) error { return nil }
