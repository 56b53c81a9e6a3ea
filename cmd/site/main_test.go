package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitekit/core/config"
	"github.com/dmitrymomot/sitekit/core/logger"
	"github.com/dmitrymomot/sitekit/pkg/hasher"
	"github.com/dmitrymomot/sitekit/store/sqlitestore"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.Reset()
	t.Cleanup(config.Reset)

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestHashCommand(t *testing.T) {
	t.Setenv("HASH_SALT", "pepper")

	t.Run("prints salted digest", func(t *testing.T) {
		out, err := execute(t, "hash", "secret")
		require.NoError(t, err)
		assert.Equal(t, hasher.Hash("pepper", "secret"), strings.TrimSpace(out))
	})

	t.Run("requires exactly one argument", func(t *testing.T) {
		_, err := execute(t, "hash")
		require.Error(t, err)
	})
}

func TestHashCommandWithoutSalt(t *testing.T) {
	t.Setenv("HASH_SALT", "")

	_, err := execute(t, "hash", "secret")
	require.Error(t, err)
}

func TestMigrateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("LOG_LEVEL", "error")

	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite schema is up to date")

	s, err := sqlitestore.Open(t.Context(), path, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	cultures, err := s.EnabledLanguages(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "de"}, cultures)
}

func TestUserCreateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("HASH_SALT", "pepper")
	t.Setenv("LOG_LEVEL", "error")

	t.Run("creates enabled account with hashed password", func(t *testing.T) {
		out, err := execute(t, "user", "create",
			"--account", "jdoe",
			"--name", "Jane Doe",
			"--email", "jdoe@example.com",
			"--password", "s3cret",
		)
		require.NoError(t, err)
		require.NotEmpty(t, strings.TrimSpace(out))

		s, err := sqlitestore.Open(t.Context(), path, logger.Discard())
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })

		u, err := s.UserByAccount(t.Context(), "jdoe")
		require.NoError(t, err)
		assert.Equal(t, strings.TrimSpace(out), u.ID.String())
		assert.Equal(t, "Jane Doe", u.Name)
		assert.True(t, u.Enabled)
		assert.Equal(t, hasher.Hash("pepper", "s3cret"), u.PasswordHash)
	})

	t.Run("rejects missing password", func(t *testing.T) {
		_, err := execute(t, "user", "create", "--account", "nobody")
		require.Error(t, err)
	})
}
