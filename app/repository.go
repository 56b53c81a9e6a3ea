package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/sitekit/core/culture"
	"github.com/dmitrymomot/sitekit/core/menu"
	"github.com/dmitrymomot/sitekit/integration/database/pg"
	"github.com/dmitrymomot/sitekit/site"
	"github.com/dmitrymomot/sitekit/store"
	"github.com/dmitrymomot/sitekit/store/pgstore"
	"github.com/dmitrymomot/sitekit/store/sqlitestore"
)

// Repository is the data access the site needs.
type Repository interface {
	site.UserRepository
	culture.LanguageSource
	menu.Source
	Languages(ctx context.Context) ([]store.Language, error)
	CreateUser(ctx context.Context, u store.User) error
}

// Database is an opened, migrated repository with its lifecycle hooks.
type Database struct {
	Repository  Repository
	Healthcheck func(context.Context) error
	Close       func() error
}

// OpenDatabase connects to the configured backend and applies migrations.
func OpenDatabase(ctx context.Context, cfg Config, log *slog.Logger) (*Database, error) {
	switch cfg.Database.Driver {
	case DriverPostgres:
		pool, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, err
		}
		return &Database{
			Repository:  pgstore.New(pool),
			Healthcheck: pg.Healthcheck(pool),
			Close: func() error {
				pool.Close()
				return nil
			},
		}, nil

	case DriverSQLite, "":
		s, err := sqlitestore.Open(ctx, cfg.SQLite.Path, log)
		if err != nil {
			return nil, err
		}
		return &Database{
			Repository:  s,
			Healthcheck: s.Healthcheck,
			Close:       s.Close,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Database.Driver)
	}
}
