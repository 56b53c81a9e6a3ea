package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sitekit/core/logger"
)

// SessionKey is the session key holding the serialized profile.
const SessionKey = "current_user"

// UserProfile is the session snapshot of a user.
type UserProfile struct {
	ID          uuid.UUID `json:"id"`
	Account     string    `json:"account"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
}

// Storage is key/value session state scoped to the current request.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// UserFinder looks up a user by id.
// Unknown ids must produce an error matching ErrUserNotFound.
type UserFinder interface {
	FindUser(ctx context.Context, id uuid.UUID) (UserProfile, error)
}

// UserFinderFunc adapts a function to UserFinder.
type UserFinderFunc func(ctx context.Context, id uuid.UUID) (UserProfile, error)

// FindUser calls f(ctx, id).
func (f UserFinderFunc) FindUser(ctx context.Context, id uuid.UUID) (UserProfile, error) {
	return f(ctx, id)
}

// Accessor reads and writes the profile snapshot.
type Accessor struct {
	storage Storage
	finder  UserFinder
	logger  *slog.Logger
}

// Option configures an Accessor.
type Option func(*Accessor)

// WithLogger sets the logger used for corrupt snapshot warnings.
func WithLogger(l *slog.Logger) Option {
	return func(a *Accessor) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAccessor creates an Accessor over storage and finder.
func NewAccessor(storage Storage, finder UserFinder, opts ...Option) *Accessor {
	a := &Accessor{
		storage: storage,
		finder:  finder,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Set looks up the user and stores its snapshot, replacing any previous one.
// An unknown user stores an empty snapshot.
func (a *Accessor) Set(ctx context.Context, id uuid.UUID) error {
	p, err := a.finder.FindUser(ctx, id)
	switch {
	case errors.Is(err, ErrUserNotFound):
		p = UserProfile{}
	case err != nil:
		return fmt.Errorf("find user %s: %w", id, err)
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := a.storage.Set(ctx, SessionKey, raw); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

// Get returns the stored snapshot.
// A missing, empty or undecodable value reports ok=false without an error.
func (a *Accessor) Get(ctx context.Context) (UserProfile, bool, error) {
	raw, ok, err := a.storage.Get(ctx, SessionKey)
	if err != nil {
		return UserProfile{}, false, errors.Join(ErrStorage, err)
	}
	if !ok || len(raw) == 0 {
		return UserProfile{}, false, nil
	}

	var p UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		a.logger.WarnContext(ctx, "discarding corrupt profile snapshot",
			logger.Component("profile"),
			logger.Error(err),
		)
		return UserProfile{}, false, nil
	}
	return p, true, nil
}

// Clear removes the snapshot.
func (a *Accessor) Clear(ctx context.Context) error {
	if err := a.storage.Delete(ctx, SessionKey); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}
