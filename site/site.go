package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sitekit/core/culture"
	"github.com/dmitrymomot/sitekit/core/hierarchy"
	"github.com/dmitrymomot/sitekit/core/logger"
	"github.com/dmitrymomot/sitekit/core/menu"
	"github.com/dmitrymomot/sitekit/core/profile"
	"github.com/dmitrymomot/sitekit/core/session"
	"github.com/dmitrymomot/sitekit/pkg/hasher"
	"github.com/dmitrymomot/sitekit/store"
)

// UserRepository reads site accounts.
type UserRepository interface {
	UserByID(ctx context.Context, id uuid.UUID) (store.User, error)
	UserByAccount(ctx context.Context, account string) (store.User, error)
}

// CultureResolver lists, reads and writes the display culture.
type CultureResolver interface {
	Cultures(ctx context.Context) ([]string, error)
	Current(r *http.Request) (string, error)
	Set(w http.ResponseWriter, r *http.Request, candidate string) (string, error)
}

// MenuBuilder assembles the menu forest for a culture.
type MenuBuilder interface {
	Build(ctx context.Context, culture string) ([]*hierarchy.Node[menu.Node], error)
}

// Service is the site helper service.
type Service struct {
	hasher   *hasher.Hasher
	users    UserRepository
	cultures CultureResolver
	menus    MenuBuilder
	profiles *profile.Accessor
	logger   *slog.Logger
}

type options struct {
	logger  *slog.Logger
	storage profile.Storage
}

// Option configures a Service.
type Option func(*options)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProfileStorage replaces the session-backed profile storage.
func WithProfileStorage(s profile.Storage) Option {
	return func(o *options) {
		if s != nil {
			o.storage = s
		}
	}
}

// New creates a Service.
func New(h *hasher.Hasher, users UserRepository, cultures CultureResolver, menus MenuBuilder, opts ...Option) *Service {
	o := &options{
		logger:  logger.Discard(),
		storage: session.ContextValues{},
	}
	for _, opt := range opts {
		opt(o)
	}

	s := &Service{
		hasher:   h,
		users:    users,
		cultures: cultures,
		menus:    menus,
		logger:   o.logger,
	}
	s.profiles = profile.NewAccessor(o.storage, profile.UserFinderFunc(s.findUser), profile.WithLogger(o.logger))
	return s
}

func (s *Service) findUser(ctx context.Context, id uuid.UUID) (profile.UserProfile, error) {
	u, err := s.users.UserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return profile.UserProfile{}, fmt.Errorf("user %s: %w", id, profile.ErrUserNotFound)
	}
	if err != nil {
		return profile.UserProfile{}, err
	}
	return profile.UserProfile{
		ID:          u.ID,
		Account:     u.Account,
		DisplayName: u.Name,
		Email:       u.Email,
	}, nil
}

// Hash returns the salted SHA-512 hex digest of input.
func (s *Service) Hash(input string) string {
	return s.hasher.Hash(input)
}

// Authenticate checks account and password and returns the user id.
func (s *Service) Authenticate(ctx context.Context, account, password string) (uuid.UUID, error) {
	u, err := s.users.UserByAccount(ctx, account)
	if errors.Is(err, store.ErrNotFound) {
		return uuid.Nil, ErrInvalidCredentials
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("load account: %w", err)
	}
	if !u.Enabled || !s.hasher.Verify(password, u.PasswordHash) {
		s.logger.InfoContext(ctx, "login rejected",
			logger.Component("site"),
			logger.UserID(u.ID),
		)
		return uuid.Nil, ErrInvalidCredentials
	}
	return u.ID, nil
}

// SetUserProfile stores the profile snapshot of user id in the session.
func (s *Service) SetUserProfile(ctx context.Context, id uuid.UUID) error {
	return s.profiles.Set(ctx, id)
}

// UserProfile returns the session profile snapshot.
func (s *Service) UserProfile(ctx context.Context) (profile.UserProfile, bool, error) {
	return s.profiles.Get(ctx)
}

// ClearUserProfile removes the session profile snapshot.
func (s *Service) ClearUserProfile(ctx context.Context) error {
	return s.profiles.Clear(ctx)
}

// Cultures returns the enabled cultures in display order.
func (s *Service) Cultures(ctx context.Context) ([]string, error) {
	return s.cultures.Cultures(ctx)
}

// SetCulture writes the culture cookie and returns the stored culture.
func (s *Service) SetCulture(w http.ResponseWriter, r *http.Request, candidate string) (string, error) {
	return s.cultures.Set(w, r, candidate)
}

// CurrentCulture returns the active culture, preferring the value resolved by middleware.
func (s *Service) CurrentCulture(r *http.Request) (string, error) {
	if c, ok := culture.FromContext(r.Context()); ok {
		return c, nil
	}
	return s.cultures.Current(r)
}

// Menu returns the navigation forest in the active culture.
func (s *Service) Menu(r *http.Request) ([]*hierarchy.Node[menu.Node], error) {
	c, err := s.CurrentCulture(r)
	if err != nil {
		return nil, err
	}
	return s.menus.Build(r.Context(), c)
}
