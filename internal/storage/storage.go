package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/cache"
	"github.com/aaravmahajanofficial/storefront-client/internal/config"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/redis/go-redis/v9"
)

var ErrNoSession = errors.New("no stored session")

// TokenStore persists the bearer token between runs. Load returns
// ErrNoSession when nothing is stored.
type TokenStore interface {
	Load(ctx context.Context) (*models.StoredSession, error)
	Save(ctx context.Context, session *models.StoredSession) error
	Clear(ctx context.Context) error
	Close() error
}

// New builds the store selected by cfg.Session.Store.
func New(ctx context.Context, cfg *config.Config) (TokenStore, error) {

	switch cfg.Session.Store {
	case "memory":
		return NewMemoryStore(), nil

	case "file":
		return NewFileStore(cfg.Session.FilePath, cfg.Session.Profile, cfg.Session.EncryptionKey), nil

	case "redis":
		client, err := NewRedisClient(ctx, &cfg.RedisConnect)
		if err != nil {
			return nil, err
		}

		return NewRedisStore(cache.NewRedisCache(client, &cfg.Cache), cfg.Session.Profile), nil

	case "postgres":
		return OpenPostgres(ctx, &cfg.Database, cfg.Session.Profile)

	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

func NewRedisClient(ctx context.Context, cfg *config.RedisConnect) (*redis.Client, error) {

	slog.Debug("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.Username, cfg.Host, cfg.Port)))

	opt, err := redis.ParseURL(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
