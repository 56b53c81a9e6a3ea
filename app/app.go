// Package app wires the site components from configuration and exposes the HTTP surface.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/sitekit/core/cookie"
	"github.com/dmitrymomot/sitekit/core/culture"
	"github.com/dmitrymomot/sitekit/core/logger"
	"github.com/dmitrymomot/sitekit/core/menu"
	"github.com/dmitrymomot/sitekit/core/server"
	"github.com/dmitrymomot/sitekit/core/session"
	"github.com/dmitrymomot/sitekit/core/sessiontransport"
	"github.com/dmitrymomot/sitekit/integration/database/redis"
	"github.com/dmitrymomot/sitekit/middleware"
	"github.com/dmitrymomot/sitekit/pkg/hasher"
	"github.com/dmitrymomot/sitekit/site"
)

// App owns the shared resources and the HTTP handler of the site.
type App struct {
	config    Config
	logger    *slog.Logger
	registry  *prometheus.Registry
	db        *Database
	sessions  *session.Manager[session.Values]
	transport *sessiontransport.Cookie[session.Values]
	resolver  *culture.Resolver
	site      *site.Service
	server    *server.Server
	checks    map[string]func(context.Context) error
	closers   []func() error
}

// Option configures an App.
type Option func(*App) error

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		a.logger = l
		return nil
	}
}

// WithDatabase uses an already opened database instead of OpenDatabase.
// The caller keeps ownership of it.
func WithDatabase(db *Database) Option {
	return func(a *App) error {
		if db == nil || db.Repository == nil {
			return errors.New("database cannot be nil")
		}
		a.db = db
		return nil
	}
}

// New builds the application from cfg.
func New(ctx context.Context, cfg Config, opts ...Option) (*App, error) {
	a := &App{
		config:   cfg,
		registry: prometheus.NewRegistry(),
		checks:   make(map[string]func(context.Context) error),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	if a.logger == nil {
		a.logger = logger.NewFromConfig(cfg.Logger, "sitekit",
			logger.WithContextExtractors(middleware.RequestIDExtractor))
	}

	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if err := a.init(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	h, err := hasher.NewFromConfig(a.config.Hasher)
	if err != nil {
		return err
	}

	if a.db == nil {
		db, err := OpenDatabase(ctx, a.config, a.logger)
		if err != nil {
			return err
		}
		a.db = db
		a.closers = append(a.closers, db.Close)
	}
	a.checks["database"] = a.db.Healthcheck

	store, err := a.sessionStore(ctx)
	if err != nil {
		return err
	}
	a.sessions, err = session.NewFromConfig(a.config.Session, store)
	if err != nil {
		return err
	}

	cookies, err := cookie.NewFromConfig(a.config.Cookie)
	if err != nil {
		return err
	}
	a.transport = sessiontransport.NewCookieFromConfig(a.config.SessionCookie, a.sessions, cookies)

	a.resolver = culture.NewFromConfig(a.config.Culture, a.db.Repository, cookies,
		culture.WithLogger(a.logger),
		culture.WithRegisterer(a.registry),
	)
	assembler := menu.NewAssembler(a.db.Repository,
		menu.WithLogger(a.logger),
		menu.WithRegisterer(a.registry),
	)
	a.site = site.New(h, a.db.Repository, a.resolver, assembler, site.WithLogger(a.logger))

	a.server, err = server.NewFromConfig(a.config.Server, server.WithLogger(a.logger))
	return err
}

func (a *App) sessionStore(ctx context.Context) (session.Store[session.Values], error) {
	if a.config.Redis.ConnectionURL == "" {
		a.logger.InfoContext(ctx, "using in-memory session store", logger.Component("session"))
		return session.NewMemoryStore[session.Values](), nil
	}

	client, err := redis.Connect(ctx, a.config.Redis)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Close)
	a.checks["redis"] = redis.Healthcheck(client)
	return redis.NewSessionStore[session.Values](client, a.config.Redis.SessionPrefix), nil
}

// Site returns the site service.
func (a *App) Site() *site.Service {
	return a.site
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run serves HTTP and periodically purges expired sessions until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(ctx, a.Handler()))
	g.Go(func() error {
		a.cleanupSessions(ctx)
		return nil
	})
	return g.Wait()
}

func (a *App) cleanupSessions(ctx context.Context) {
	interval := a.config.Database.SessionCleanupInterval
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.sessions.CleanupExpired(ctx)
			if err != nil {
				a.logger.WarnContext(ctx, "session cleanup failed", logger.Component("session"), logger.Error(err))
				continue
			}
			if n > 0 {
				a.logger.DebugContext(ctx, "expired sessions removed",
					logger.Component("session"),
					logger.Count("removed", int(n)),
				)
			}
		}
	}
}

// Healthcheck runs every dependency check.
func (a *App) Healthcheck(ctx context.Context) map[string]error {
	out := make(map[string]error, len(a.checks))
	for name, check := range a.checks {
		out[name] = check(ctx)
	}
	return out
}

// Close releases resources opened by New in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
