// Package sqlitestore implements the site repositories on an embedded SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrymomot/sitekit/core/menu"
	"github.com/dmitrymomot/sitekit/store"
	"github.com/dmitrymomot/sitekit/store/migrations"
)

// Config provides environment-based configuration for the SQLite store.
type Config struct {
	Path string `env:"SQLITE_PATH" envDefault:"sitekit.db"`
}

// Store reads site data from SQLite.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, enables foreign keys and applies migrations.
func Open(ctx context.Context, path string, log *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// one writer keeps SQLite free of lock contention
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	if err := migrations.Up(ctx, db, goose.DialectSQLite3, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db), nil
}

// New wraps an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Healthcheck pings the database.
func (s *Store) Healthcheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnabledLanguages returns enabled language ids ordered by seq, then id.
func (s *Store) EnabledLanguages(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM languages WHERE is_enabled = 1 ORDER BY seq, id`)
	if err != nil {
		return nil, fmt.Errorf("query languages: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan language: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Languages returns every language ordered by seq, then id.
func (s *Store) Languages(ctx context.Context) ([]store.Language, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, is_enabled, seq FROM languages ORDER BY seq, id`)
	if err != nil {
		return nil, fmt.Errorf("query languages: %w", err)
	}
	defer rows.Close()

	var out []store.Language
	for rows.Next() {
		var l store.Language
		if err := rows.Scan(&l.ID, &l.Name, &l.Enabled, &l.Seq); err != nil {
			return nil, fmt.Errorf("scan language: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

const userColumns = `id, account, name, email, password_hash, is_enabled`

// UserByID returns the user with id or store.ErrNotFound.
func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (store.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id.String()))
}

// UserByAccount returns the user with account or store.ErrNotFound.
func (s *Store) UserByAccount(ctx context.Context, account string) (store.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE account = ?`, account))
}

func (s *Store) scanUser(row *sql.Row) (store.User, error) {
	var u store.User
	err := row.Scan(&u.ID, &u.Account, &u.Name, &u.Email, &u.PasswordHash, &u.Enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return store.User{}, store.ErrNotFound
	}
	if err != nil {
		return store.User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

// CreateUser inserts u.
func (s *Store) CreateUser(ctx context.Context, u store.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID.String(), u.Account, u.Name, u.Email, u.PasswordHash, u.Enabled)
	if err != nil {
		return fmt.Errorf("insert user %s: %w", u.Account, err)
	}
	return nil
}

// MenuRows returns the menu joined with its culture translation, ordered by seq then code.
func (s *Store) MenuRows(ctx context.Context, culture string) ([]menu.Node, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.parent_id, v.ids, m.seq, m.code,
		       COALESCE(t.name, ''), COALESCE(t.description, ''),
		       m.icon, m.controller, m.action, m.is_enabled
		FROM vw_menu v
		JOIN menus m ON m.id = v.id
		LEFT JOIN menu_translations t ON t.menu_id = m.id AND t.language_id = ?
		ORDER BY m.seq, m.code`, culture)
	if err != nil {
		return nil, fmt.Errorf("query menu: %w", err)
	}
	defer rows.Close()

	out := []menu.Node{}
	for rows.Next() {
		var n menu.Node
		if err := rows.Scan(&n.ID, &n.ParentID, &n.Path, &n.Seq, &n.Code,
			&n.Name, &n.Description, &n.Icon, &n.Controller, &n.Action, &n.Enabled); err != nil {
			return nil, fmt.Errorf("scan menu row: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
