package cache

import (
	"context"
	"time"
)

// Cache stores JSON-encoded values under string keys with a TTL.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	SessionKeyPrefix    = "session"
	CategoriesKeyPrefix = "categories"
	ProductKeyPrefix    = "product"
)
