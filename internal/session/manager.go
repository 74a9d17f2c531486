package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/api"
	appErrors "github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/aaravmahajanofficial/storefront-client/internal/storage"
	"github.com/aaravmahajanofficial/storefront-client/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.Token, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Me(ctx context.Context) (*models.User, error)
}

// Manager owns the authentication state. The stored token and the in-memory
// session always change together.
type Manager struct {
	api      AuthAPI
	store    storage.TokenStore
	validate *validator.Validate
	now      func() time.Time

	mu        sync.RWMutex
	session   models.Session
	listeners []func(models.Session)
}

func NewManager(authAPI AuthAPI, store storage.TokenStore) *Manager {
	return &Manager{
		api:      authAPI,
		store:    store,
		validate: validator.New(),
		now:      time.Now,
	}
}

// OnChange registers fn to run after every authentication state change.
func (m *Manager) OnChange(fn func(models.Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners = append(m.listeners, fn)
}

func (m *Manager) Current() models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.session
}

func (m *Manager) set(session models.Session) {
	m.mu.Lock()
	m.session = session
	listeners := append([]func(models.Session){}, m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(session)
	}
}

// Restore rebuilds the session from the store. An expired token is dropped
// without a network round trip; otherwise the token is checked against
// /users/me.
func (m *Manager) Restore(ctx context.Context) (models.Session, error) {
	logger := api.LoggerFromContext(ctx)

	stored, err := m.store.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNoSession) {
			m.set(models.Session{})
			return models.Session{}, nil
		}
		return models.Session{}, appErrors.InternalError("Failed to read stored session").WithError(err)
	}

	claims := decodeClaims(stored.Token)
	if claims != nil && claims.ExpiresAt != nil && !claims.ExpiresAt.After(m.now()) {
		logger.Info("Stored session expired", slog.Time("expired_at", claims.ExpiresAt.Time))

		if err := m.store.Clear(ctx); err != nil {
			logger.Warn("Failed to clear expired session", slog.String("error", err.Error()))
		}
		m.set(models.Session{})

		return models.Session{}, nil
	}

	user, err := m.api.Me(ctx)
	if err != nil {
		if appErrors.IsStatus(err, http.StatusUnauthorized) {
			// the client already cleared the store
			m.set(models.Session{})
			return models.Session{}, nil
		}
		return models.Session{}, err
	}

	session := buildSession(stored.Token, user, claims)
	m.set(session)

	if stored.Role != user.Role || stored.Email != user.Email {
		stored.Role, stored.Email = user.Role, user.Email
		if err := m.store.Save(ctx, stored); err != nil {
			logger.Warn("Failed to refresh stored session", slog.String("error", err.Error()))
		}
	}

	return session, nil
}

func (m *Manager) Login(ctx context.Context, email, password string) (models.Session, error) {
	req := &models.LoginRequest{Email: email, Password: password}
	if err := utils.ValidateStruct(m.validate, req); err != nil {
		return models.Session{}, err
	}

	token, err := m.api.Login(ctx, req.Email, req.Password)
	if err != nil {
		return models.Session{}, err
	}

	stored := &models.StoredSession{
		Token:     token.AccessToken,
		TokenType: token.TokenType,
		Role:      token.Role,
		Email:     req.Email,
		SavedAt:   m.now().UTC(),
	}

	if err := m.store.Save(ctx, stored); err != nil {
		return models.Session{}, appErrors.InternalError("Failed to persist session").WithError(err)
	}

	user, err := m.api.Me(ctx)
	if err != nil {
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			api.LoggerFromContext(ctx).Warn("Failed to clear session after login failure", slog.String("error", clearErr.Error()))
		}
		m.set(models.Session{})

		return models.Session{}, err
	}

	if stored.Role != user.Role {
		stored.Role = user.Role
		if err := m.store.Save(ctx, stored); err != nil {
			api.LoggerFromContext(ctx).Warn("Failed to update stored role", slog.String("error", err.Error()))
		}
	}

	session := buildSession(token.AccessToken, user, decodeClaims(token.AccessToken))
	m.set(session)

	api.LoggerFromContext(ctx).Info("Logged in", slog.String("email", session.Email), slog.String("role", session.Role))

	return session, nil
}

// Register creates the account and logs in with the same credentials.
func (m *Manager) Register(ctx context.Context, req *models.RegisterRequest) (models.Session, error) {
	if err := utils.ValidateStruct(m.validate, req); err != nil {
		return models.Session{}, err
	}

	if _, err := m.api.Register(ctx, req); err != nil {
		return models.Session{}, err
	}

	return m.Login(ctx, req.Email, req.Password)
}

func (m *Manager) Logout(ctx context.Context) error {
	err := m.store.Clear(ctx)
	m.set(models.Session{})

	if err != nil {
		return appErrors.InternalError("Failed to clear stored session").WithError(err)
	}

	return nil
}

// Invalidate resets the in-memory state after the backend rejected the token.
func (m *Manager) Invalidate(ctx context.Context) {
	if m.Current().IsAuthenticated {
		api.LoggerFromContext(ctx).Info("Session invalidated by server")
	}

	m.set(models.Session{})
}

func (m *Manager) RequireAuth() error {
	if !m.Current().IsAuthenticated {
		return appErrors.UnauthorizedError("Please log in first")
	}

	return nil
}

func (m *Manager) RequireAdmin() error {
	if err := m.RequireAuth(); err != nil {
		return err
	}

	if !m.Current().IsAdmin() {
		return appErrors.ForbiddenError("Admin access required")
	}

	return nil
}

// decodeClaims reads the token payload without verifying the signature; the
// client never holds the signing key. Opaque tokens yield nil.
func decodeClaims(token string) *models.Claims {
	claims := &models.Claims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	return claims
}

func buildSession(token string, user *models.User, claims *models.Claims) models.Session {
	session := models.Session{
		Token:           token,
		Role:            user.Role,
		Email:           user.Email,
		UserID:          user.ID,
		IsAuthenticated: true,
	}

	if claims != nil && claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	return session
}
