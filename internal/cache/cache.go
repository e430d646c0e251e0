package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Cache stores raw REST response bodies by key.
// A miss is reported as (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ResponseKey builds the cache key for a GET request. Scope identifies the
// upstream (base URL and credentials) so clients sharing a cache never see
// each other's responses.
func ResponseKey(scope, path, rawQuery string) string {
	if rawQuery == "" {
		return fmt.Sprintf("gte:rest:%s:%s", scope, path)
	}
	return fmt.Sprintf("gte:rest:%s:%s?%s", scope, path, rawQuery)
}

// InMemoryCache implements Cache with a map, for tests and single-process use.
type InMemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *InMemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, true, nil
}

// Set stores value; a non-positive ttl never expires.
func (c *InMemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

func (c *InMemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}
