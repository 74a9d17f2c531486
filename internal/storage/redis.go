package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/cache"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
)

const redisSessionTTL = 30 * 24 * time.Hour

type redisStore struct {
	cache cache.Cache
	key   string
}

// NewRedisStore shares a session between machines through Redis, one key per
// profile.
func NewRedisStore(c cache.Cache, profile string) TokenStore {
	return &redisStore{
		cache: c,
		key:   cache.Key(cache.SessionKeyPrefix, profile),
	}
}

func (r *redisStore) Load(ctx context.Context) (*models.StoredSession, error) {
	var session models.StoredSession

	found, err := r.cache.Get(ctx, r.key, &session)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if !found || session.Token == "" {
		return nil, ErrNoSession
	}

	return &session, nil
}

func (r *redisStore) Save(ctx context.Context, session *models.StoredSession) error {
	if err := r.cache.Set(ctx, r.key, session, redisSessionTTL); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *redisStore) Clear(ctx context.Context) error {
	if err := r.cache.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}

func (r *redisStore) Close() error {
	return r.cache.Close()
}
