// Package pgstore implements the site repositories on PostgreSQL via pgx.
//
// Every query runs inside the transaction carried by the context (pg.WithTx)
// when one is present, and on the pool otherwise.
package pgstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/sitekit/core/menu"
	"github.com/dmitrymomot/sitekit/integration/database/pg"
	"github.com/dmitrymomot/sitekit/store"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store reads site data from PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store over pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) db(ctx context.Context) querier {
	if tx, ok := pg.TxFromContext(ctx); ok {
		return tx
	}
	return s.pool
}

// EnabledLanguages returns enabled language ids ordered by seq, then id.
func (s *Store) EnabledLanguages(ctx context.Context) ([]string, error) {
	rows, err := s.db(ctx).Query(ctx,
		`SELECT id FROM languages WHERE is_enabled ORDER BY seq, id`)
	if err != nil {
		return nil, fmt.Errorf("query languages: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan languages: %w", err)
	}
	return ids, nil
}

// Languages returns every language ordered by seq, then id.
func (s *Store) Languages(ctx context.Context) ([]store.Language, error) {
	rows, err := s.db(ctx).Query(ctx,
		`SELECT id, name, is_enabled, seq FROM languages ORDER BY seq, id`)
	if err != nil {
		return nil, fmt.Errorf("query languages: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (store.Language, error) {
		var l store.Language
		err := row.Scan(&l.ID, &l.Name, &l.Enabled, &l.Seq)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan languages: %w", err)
	}
	return out, nil
}

const userColumns = `id, account, name, email, password_hash, is_enabled`

// UserByID returns the user with id or store.ErrNotFound.
func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (store.User, error) {
	return scanUser(s.db(ctx).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// UserByAccount returns the user with account or store.ErrNotFound.
func (s *Store) UserByAccount(ctx context.Context, account string) (store.User, error) {
	return scanUser(s.db(ctx).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE account = $1`, account))
}

func scanUser(row pgx.Row) (store.User, error) {
	var u store.User
	err := row.Scan(&u.ID, &u.Account, &u.Name, &u.Email, &u.PasswordHash, &u.Enabled)
	if pg.IsNotFoundError(err) {
		return store.User{}, store.ErrNotFound
	}
	if err != nil {
		return store.User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

// CreateUser inserts u.
func (s *Store) CreateUser(ctx context.Context, u store.User) error {
	_, err := s.db(ctx).Exec(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Account, u.Name, u.Email, u.PasswordHash, u.Enabled)
	if err != nil {
		return fmt.Errorf("insert user %s: %w", u.Account, err)
	}
	return nil
}

// MenuRows returns the menu joined with its culture translation, ordered by seq then code.
func (s *Store) MenuRows(ctx context.Context, culture string) ([]menu.Node, error) {
	rows, err := s.db(ctx).Query(ctx, `
		SELECT v.id, v.parent_id, v.ids, m.seq, m.code,
		       COALESCE(t.name, ''), COALESCE(t.description, ''),
		       m.icon, m.controller, m.action, m.is_enabled
		FROM vw_menu v
		JOIN menus m ON m.id = v.id
		LEFT JOIN menu_translations t ON t.menu_id = m.id AND t.language_id = $1
		ORDER BY m.seq, m.code`, culture)
	if err != nil {
		return nil, fmt.Errorf("query menu: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (menu.Node, error) {
		var n menu.Node
		err := row.Scan(&n.ID, &n.ParentID, &n.Path, &n.Seq, &n.Code,
			&n.Name, &n.Description, &n.Icon, &n.Controller, &n.Action, &n.Enabled)
		return n, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan menu rows: %w", err)
	}
	return out, nil
}
