package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process memory.
// Suitable for development, tests and single-instance deployments.
type MemoryStore[Data any] struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]Session[Data]
	byToken map[string]uuid.UUID
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore[Data any]() *MemoryStore[Data] {
	return &MemoryStore[Data]{
		byID:    make(map[uuid.UUID]Session[Data]),
		byToken: make(map[string]uuid.UUID),
	}
}

// GetByID returns a copy of the session with the given ID.
func (s *MemoryStore[Data]) GetByID(_ context.Context, id uuid.UUID) (*Session[Data], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sess, nil
}

// GetByToken returns a copy of the session currently holding token.
func (s *MemoryStore[Data]) GetByToken(_ context.Context, token string) (*Session[Data], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byToken[token]
	if !ok {
		return nil, ErrNotFound
	}
	sess, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Save stores a copy of the session, replacing the token index entry if the token rotated.
func (s *MemoryStore[Data]) Save(_ context.Context, sess *Session[Data]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.byID[sess.ID]; ok && prev.Token != sess.Token {
		delete(s.byToken, prev.Token)
	}

	stored := *sess
	stored.isModified = false
	s.byID[sess.ID] = stored
	s.byToken[sess.Token] = sess.ID
	return nil
}

// Delete removes the session with the given ID.
func (s *MemoryStore[Data]) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.byToken, sess.Token)
	delete(s.byID, id)
	return nil
}

// DeleteExpired removes expired sessions and returns how many were removed.
func (s *MemoryStore[Data]) DeleteExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var n int64
	for id, sess := range s.byID {
		if now.After(sess.ExpiresAt) {
			delete(s.byToken, sess.Token)
			delete(s.byID, id)
			n++
		}
	}
	return n, nil
}
