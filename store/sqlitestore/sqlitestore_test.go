package sqlitestore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitekit/store"
	"github.com/dmitrymomot/sitekit/store/sqlitestore"
)

func openStore(t *testing.T) *sqlitestore.Store {
	t.Helper()
	s, err := sqlitestore.Open(context.Background(), filepath.Join(t.TempDir(), "site.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustExec(t *testing.T, s *sqlitestore.Store, query string, args ...any) {
	t.Helper()
	_, err := s.DB().ExecContext(context.Background(), query, args...)
	require.NoError(t, err)
}

func TestEnabledLanguages(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	ctx := context.Background()
	mustExec(t, s, `DELETE FROM menu_translations`)
	mustExec(t, s, `DELETE FROM languages`)
	mustExec(t, s, `INSERT INTO languages (id, name, is_enabled, seq) VALUES
		('en', 'English', 1, 2), ('fr', 'French', 0, 1), ('de', 'German', 1, 1)`)

	ids, err := s.EnabledLanguages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "en"}, ids)

	all, err := s.Languages(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, store.Language{ID: "de", Name: "German", Enabled: true, Seq: 1}, all[0])
	assert.False(t, all[1].Enabled)
}

func TestUsers(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	ctx := context.Background()
	u := store.User{
		ID:           uuid.New(),
		Account:      "alice",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "abc",
		Enabled:      true,
	}
	require.NoError(t, s.CreateUser(ctx, u))

	byID, err := s.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, byID)

	byAccount, err := s.UserByAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u, byAccount)

	_, err = s.UserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.UserByAccount(ctx, "bob")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Error(t, s.CreateUser(ctx, u), "duplicate account")
}

func TestMenuRows(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	ctx := context.Background()

	t.Run("seeded menu in german", func(t *testing.T) {
		rows, err := s.MenuRows(ctx, "de")
		require.NoError(t, err)
		require.Len(t, rows, 4)

		byCode := make(map[string]int, len(rows))
		for i, r := range rows {
			byCode[r.Code] = i
		}

		users := rows[byCode["users"]]
		assert.Equal(t, "Benutzer", users.Name)
		assert.True(t, users.ParentID.Valid)
		assert.Equal(t, rows[byCode["admin"]].ID, users.ParentID.UUID)
		assert.Equal(t, rows[byCode["admin"]].ID.String()+","+users.ID.String(), users.Path)

		// no german translation
		assert.Empty(t, rows[byCode["languages"]].Name)
		assert.False(t, rows[byCode["home"]].ParentID.Valid)
	})

	t.Run("unknown culture yields empty names", func(t *testing.T) {
		rows, err := s.MenuRows(ctx, "xx")
		require.NoError(t, err)
		require.Len(t, rows, 4)
		for _, r := range rows {
			assert.Empty(t, r.Name)
			assert.Empty(t, r.Description)
		}
	})

	t.Run("orphan rows are returned", func(t *testing.T) {
		orphan := uuid.New()
		mustExec(t, s, `INSERT INTO menus (id, parent_id, code, seq) VALUES (?, ?, 'orphan', 9)`,
			orphan.String(), uuid.New().String())

		rows, err := s.MenuRows(ctx, "en")
		require.NoError(t, err)
		require.Len(t, rows, 5)
		last := rows[len(rows)-1]
		assert.Equal(t, orphan, last.ID)
		assert.True(t, last.ParentID.Valid)
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	assert.NoError(t, s.Healthcheck(context.Background()))
}
