package app_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitekit/app"
	"github.com/dmitrymomot/sitekit/core/logger"
	"github.com/dmitrymomot/sitekit/pkg/hasher"
	"github.com/dmitrymomot/sitekit/store"
)

const salt = "pepper"

func testConfig(t *testing.T) app.Config {
	t.Helper()
	cfg := app.DefaultConfig()
	cfg.Hasher.Secret = salt
	cfg.Cookie.Secrets = "0123456789abcdef0123456789abcdef"
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "site.db")
	cfg.SessionCookie.Secure = false
	cfg.Database.SessionCleanupInterval = 0
	return cfg
}

func newServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	ctx := context.Background()
	cfg := testConfig(t)

	db, err := app.OpenDatabase(ctx, cfg, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Repository.CreateUser(ctx, store.User{
		ID:           uuid.New(),
		Account:      "alice",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: hasher.Hash(salt, "secret"),
		Enabled:      true,
	}))

	a, err := app.New(ctx, cfg, app.WithDatabase(db), app.WithLogger(logger.Discard()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar}
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestLoginFlow(t *testing.T) {
	t.Parallel()

	srv, client := newServer(t)

	resp, err := client.Get(srv.URL + "/me")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = client.PostForm(srv.URL+"/login", url.Values{"account": {"alice"}, "password": {"wrong"}})
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = client.PostForm(srv.URL+"/login", url.Values{"account": {"alice"}, "password": {"secret"}})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p map[string]any
	decode(t, resp, &p)
	assert.Equal(t, "Alice", p["display_name"])

	resp, err = client.Get(srv.URL + "/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &p)
	assert.Equal(t, "alice", p["account"])

	resp, err = client.Post(srv.URL+"/logout", "", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/me")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCultureAndMenu(t *testing.T) {
	t.Parallel()

	srv, client := newServer(t)

	var got struct {
		Current  string   `json:"current"`
		Cultures []string `json:"cultures"`
	}
	resp, err := client.Get(srv.URL + "/culture")
	require.NoError(t, err)
	decode(t, resp, &got)
	assert.Equal(t, "en", got.Current)
	assert.Equal(t, []string{"en", "de"}, got.Cultures)

	resp, err = client.PostForm(srv.URL+"/culture", url.Values{"culture": {"not a tag!"}})
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = client.PostForm(srv.URL+"/culture", url.Values{"culture": {"de"}})
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/menu")
	require.NoError(t, err)
	assert.Equal(t, "de", resp.Header.Get("Content-Language"))
	var forest []struct {
		Value struct {
			Name string `json:"name"`
		} `json:"value"`
		Children []json.RawMessage `json:"children"`
	}
	decode(t, resp, &forest)
	require.Len(t, forest, 2)
	assert.Equal(t, "Start", forest[0].Value.Name)
	assert.Len(t, forest[1].Children, 2)

	resp, err = client.Get(srv.URL + "/sidebar")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
	assert.Contains(t, string(body), `<a href="/users/index">Benutzer</a>`)
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	srv, client := newServer(t)

	resp, err := client.Get(srv.URL + "/health")
	require.NoError(t, err)
	var health map[string]string
	decode(t, resp, &health)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", health["database"])
	assert.Empty(t, resp.Cookies(), "infra endpoints do not create sessions")

	// trigger a culture fallback so the counter is exported
	resp, err = client.Get(srv.URL + "/culture")
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp, err = client.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	assert.Contains(t, string(body), "sitekit_culture_fallbacks_total")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestOpenDatabaseUnknownDriver(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"
	_, err := app.OpenDatabase(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, app.ErrUnknownDriver)
}

func TestNewRequiresSalt(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Hasher.Secret = ""
	_, err := app.New(context.Background(), cfg, app.WithLogger(logger.Discard()))
	assert.ErrorIs(t, err, hasher.ErrEmptySecret)
}
