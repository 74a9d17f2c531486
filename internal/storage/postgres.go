package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/storefront-client/internal/config"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/aaravmahajanofficial/storefront-client/internal/utils"

	_ "github.com/lib/pq"
)

const createSessionsTable = `
	CREATE TABLE IF NOT EXISTS client_sessions (
		profile    TEXT PRIMARY KEY,
		token      TEXT NOT NULL,
		token_type TEXT NOT NULL,
		role       TEXT,
		email      TEXT,
		saved_at   TIMESTAMPTZ NOT NULL
	)`

type postgresStore struct {
	db      *sql.DB
	profile string
}

// OpenPostgres connects, verifies the connection and makes sure the sessions
// table exists.
func OpenPostgres(ctx context.Context, cfg *config.Database, profile string) (TokenStore, error) {

	db, err := otelsql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if err := db.PingContext(dbCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := NewPostgresStore(db, profile)
	if err := store.(*postgresStore).migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func NewPostgresStore(db *sql.DB, profile string) TokenStore {
	return &postgresStore{db: db, profile: profile}
}

func (p *postgresStore) migrate(ctx context.Context) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := p.db.ExecContext(dbCtx, createSessionsTable); err != nil {
		return fmt.Errorf("failed to create sessions table: %w", err)
	}

	return nil
}

func (p *postgresStore) Load(ctx context.Context) (*models.StoredSession, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT token, token_type, COALESCE(role, ''), COALESCE(email, ''), saved_at
		FROM client_sessions
		WHERE profile = $1
	`

	session := &models.StoredSession{}

	err := p.db.QueryRowContext(dbCtx, query, p.profile).Scan(&session.Token, &session.TokenType, &session.Role, &session.Email, &session.SavedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return session, nil
}

func (p *postgresStore) Save(ctx context.Context, session *models.StoredSession) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO client_sessions (profile, token, token_type, role, email, saved_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (profile) DO UPDATE
		SET token = EXCLUDED.token, token_type = EXCLUDED.token_type, role = EXCLUDED.role,
			email = EXCLUDED.email, saved_at = EXCLUDED.saved_at
	`

	if _, err := p.db.ExecContext(dbCtx, query, p.profile, session.Token, session.TokenType, session.Role, session.Email, session.SavedAt); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (p *postgresStore) Clear(ctx context.Context) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := p.db.ExecContext(dbCtx, `DELETE FROM client_sessions WHERE profile = $1`, p.profile); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}

func (p *postgresStore) Close() error {
	return p.db.Close()
}
