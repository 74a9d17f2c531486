package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/config"
	"github.com/jellydator/ttlcache/v3"
)

// memoryCache is the process-local Cache used when no Redis is configured.
// Values are JSON-encoded so callers observe the same copy semantics as Redis.
type memoryCache struct {
	items *ttlcache.Cache[string, []byte]
}

func NewMemoryCache(cfg *config.CacheConfig) Cache {
	return &memoryCache{
		items: ttlcache.New(
			ttlcache.WithTTL[string, []byte](cfg.DefaultTTL),
			ttlcache.WithDisableTouchOnHit[string, []byte](),
		),
	}
}

func (m *memoryCache) Get(_ context.Context, key string, value any) (bool, error) {
	item := m.items.Get(key)
	if item == nil || item.IsExpired() {
		return false, nil
	}

	if err := json.Unmarshal(item.Value(), value); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache data for key %s: %w", key, err)
	}

	return true, nil
}

// Set stores value for ttl; a ttl <= 0 uses the configured default.
func (m *memoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	if ttl <= 0 {
		ttl = ttlcache.DefaultTTL
	}

	m.items.DeleteExpired()
	m.items.Set(key, data, ttl)

	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.items.Delete(key)

	return nil
}

func (m *memoryCache) Close() error {
	m.items.DeleteAll()

	return nil
}
