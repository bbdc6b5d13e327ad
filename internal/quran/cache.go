// Copyright (c) 2026 AtharHuda. All rights reserved.

package quran

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by [Cache.Get] when no entry exists under the key.
var ErrCacheMiss = errors.New("quran: cache miss")

// Cache is the TTL cache contract for fetched juz pages.
//
// The Redis backend is preferred in deployments; the in-memory backend
// serves single-process runs without a REDIS_URL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// # Redis Backend

// RedisCache stores juz pages in Redis with a TTL.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache constructs a cache over an existing client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns the cached payload, or [ErrCacheMiss].
func (cache *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := cache.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Set stores the payload under key with the given TTL.
func (cache *RedisCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return cache.client.Set(ctx, key, payload, ttl).Err()
}

// # In-Memory Backend

// MemoryCache is a process-local TTL cache, used when Redis is not configured.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewMemoryCache constructs an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the cached payload, or [ErrCacheMiss] on absence or expiry.
func (cache *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	cache.mu.RLock()
	entry, ok := cache.entries[key]
	cache.mu.RUnlock()

	if !ok || cache.now().After(entry.expiresAt) {
		return nil, ErrCacheMiss
	}
	return entry.payload, nil
}

// Set stores the payload under key. Expired entries are evicted lazily on Get.
func (cache *MemoryCache) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	cache.mu.Lock()
	cache.entries[key] = memoryEntry{payload: payload, expiresAt: cache.now().Add(ttl)}
	cache.mu.Unlock()
	return nil
}
