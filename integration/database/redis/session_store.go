package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sitekit/core/session"
)

// SessionStore persists sessions as JSON with Redis key expiry.
// Two keys are kept per session: the payload by id and a token index.
type SessionStore[Data any] struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionStore creates a session store using keys under prefix.
func NewSessionStore[Data any](client redis.UniversalClient, prefix string) *SessionStore[Data] {
	if prefix == "" {
		prefix = "session:"
	}
	return &SessionStore[Data]{client: client, prefix: prefix}
}

func (s *SessionStore[Data]) idKey(id uuid.UUID) string {
	return s.prefix + "id:" + id.String()
}

func (s *SessionStore[Data]) tokenKey(token string) string {
	return s.prefix + "token:" + token
}

// GetByID loads the session stored under id.
func (s *SessionStore[Data]) GetByID(ctx context.Context, id uuid.UUID) (*session.Session[Data], error) {
	raw, err := s.client.Get(ctx, s.idKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	var sess session.Session[Data]
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, errors.Join(ErrCorruptSession, err)
	}
	return &sess, nil
}

// GetByToken resolves the token index and loads the session.
// Stale index entries left by token rotation resolve to ErrNotFound.
func (s *SessionStore[Data]) GetByToken(ctx context.Context, token string) (*session.Session[Data], error) {
	rawID, err := s.client.Get(ctx, s.tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session token: %w", err)
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errors.Join(ErrCorruptSession, err)
	}
	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Token != token {
		return nil, session.ErrNotFound
	}
	return sess, nil
}

// Save writes the session and its token index with expiry at sess.ExpiresAt.
func (s *SessionStore[Data]) Save(ctx context.Context, sess *session.Session[Data]) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, sess.ID)
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.idKey(sess.ID), raw, ttl)
		p.Set(ctx, s.tokenKey(sess.Token), sess.ID.String(), ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}

// Delete removes the session and its current token index.
func (s *SessionStore[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.idKey(id), s.tokenKey(sess.Token)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis expires keys on its own.
func (s *SessionStore[Data]) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}
