package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Manager handles session lifecycle including creation, retrieval, and expiration.
// The touchInterval determines how often sessions are automatically extended on access,
// reducing write operations to the store.
type Manager[Data any] struct {
	store         Store[Data]
	ttl           time.Duration
	touchInterval time.Duration
}

// NewManager creates a session manager with the specified store, time-to-live duration,
// and touch interval.
func NewManager[Data any](store Store[Data], ttl, touchInterval time.Duration) *Manager[Data] {
	return &Manager[Data]{
		store:         store,
		ttl:           ttl,
		touchInterval: touchInterval,
	}
}

// New creates a new anonymous session. It is persisted by the next Store call.
func (m *Manager[Data]) New() (Session[Data], error) {
	return New[Data](m.ttl)
}

// GetByID retrieves a session by ID and validates expiration.
func (m *Manager[Data]) GetByID(ctx context.Context, id uuid.UUID) (Session[Data], error) {
	session, err := m.store.GetByID(ctx, id)
	if err != nil {
		return Session[Data]{}, err
	}

	if session.IsExpired() {
		return Session[Data]{}, ErrExpired
	}

	return *session, nil
}

// GetByToken retrieves a session by token and validates expiration.
func (m *Manager[Data]) GetByToken(ctx context.Context, token string) (Session[Data], error) {
	session, err := m.store.GetByToken(ctx, token)
	if err != nil {
		return Session[Data]{}, err
	}

	if session.IsExpired() {
		return Session[Data]{}, ErrExpired
	}

	return *session, nil
}

// Touch extends the session expiration when the touch interval has elapsed.
// A zero interval disables touching.
func (m *Manager[Data]) Touch(sess *Session[Data]) bool {
	if m.touchInterval <= 0 {
		return false
	}
	return sess.Touch(m.ttl, m.touchInterval)
}

// Store handles all session persistence based on session state.
// When a session is deleted, returns ErrNotAuthenticated to signal the transport for cookie cleanup.
func (m *Manager[Data]) Store(ctx context.Context, sess Session[Data]) error {
	if sess.IsDeleted() {
		if err := m.store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return errors.Join(ErrDeleteSession, err)
		}
		return ErrNotAuthenticated
	}

	if !sess.IsModified() {
		return nil
	}

	if err := m.store.Save(ctx, &sess); err != nil {
		return errors.Join(ErrSaveSession, err)
	}
	return nil
}

// CleanupExpired removes all expired sessions from the store.
// Should be called periodically to prevent session storage growth.
func (m *Manager[Data]) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx)
}

// TTL returns the session time-to-live duration.
func (m *Manager[Data]) TTL() time.Duration {
	return m.ttl
}
