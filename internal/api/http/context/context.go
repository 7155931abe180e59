package context

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/tutordash-web/internal/session"
)

type contextKey int

const (
	browserIDKey contextKey = iota
	sessionKey
)

// Manager carries the browser ID and its session store through a request context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetBrowserIDToContext returns a copy of ctx carrying browserID.
func (m *Manager) SetBrowserIDToContext(ctx context.Context, browserID uuid.UUID) context.Context {
	return context.WithValue(ctx, browserIDKey, browserID)
}

// GetBrowserIDFromContext returns the browser ID set by SetBrowserIDToContext.
func (m *Manager) GetBrowserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(browserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// SetSessionToContext returns a copy of ctx carrying the browser's session store.
func (m *Manager) SetSessionToContext(ctx context.Context, store *session.Store) context.Context {
	return context.WithValue(ctx, sessionKey, store)
}

// GetSessionFromContext returns the session store set by SetSessionToContext.
func (m *Manager) GetSessionFromContext(ctx context.Context) (*session.Store, bool) {
	store, ok := ctx.Value(sessionKey).(*session.Store)
	if !ok || store == nil {
		return nil, false
	}
	return store, true
}
