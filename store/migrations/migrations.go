// Package migrations embeds the schema migrations for every supported dialect
// and applies them with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/dmitrymomot/sitekit/core/logger"
)

var (
	//go:embed postgres/*.sql
	postgresFS embed.FS

	//go:embed sqlite/*.sql
	sqliteFS embed.FS
)

var (
	ErrUnsupportedDialect = errors.New("unsupported migration dialect")
	ErrFailedToApply      = errors.New("failed to apply migrations")
)

// FS returns the migration files for dialect.
func FS(dialect goose.Dialect) (fs.FS, error) {
	switch dialect {
	case goose.DialectPostgres:
		return fs.Sub(postgresFS, "postgres")
	case goose.DialectSQLite3:
		return fs.Sub(sqliteFS, "sqlite")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, dialect)
	}
}

// Up applies all pending migrations for dialect to db.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect, log *slog.Logger) error {
	if log == nil {
		log = logger.Discard()
	}

	fsys, err := FS(dialect)
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return errors.Join(ErrFailedToApply, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Join(ErrFailedToApply, err)
	}

	for _, r := range results {
		log.InfoContext(ctx, "migration applied",
			logger.Component("migrations"),
			slog.String("dialect", string(dialect)),
			slog.String("source", r.Source.Path),
			logger.Duration(r.Duration),
		)
	}
	log.InfoContext(ctx, "migrations up to date",
		logger.Component("migrations"),
		logger.Count("applied", len(results)),
	)
	return nil
}
