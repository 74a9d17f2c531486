package storage

import (
	"context"
	"sync"

	"github.com/aaravmahajanofficial/storefront-client/internal/models"
)

type memoryStore struct {
	mu      sync.Mutex
	session *models.StoredSession
}

// NewMemoryStore keeps the session for the lifetime of the process only.
func NewMemoryStore() TokenStore {
	return &memoryStore{}
}

func (m *memoryStore) Load(_ context.Context) (*models.StoredSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, ErrNoSession
	}

	session := *m.session

	return &session, nil
}

func (m *memoryStore) Save(_ context.Context, session *models.StoredSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *session
	m.session = &stored

	return nil
}

func (m *memoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = nil

	return nil
}

func (m *memoryStore) Close() error {
	return nil
}
