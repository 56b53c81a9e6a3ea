package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitekit/core/cookie"
)

const testSecret = "test-secret-key-32-characters!!!"
const testSecret2 = "another-secret-key-32-chars!!!!!"

// replay builds a request carrying the cookies set on w.
func replay(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a secret", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.New(nil)
		assert.ErrorIs(t, err, cookie.ErrNoSecret)

		_, err = cookie.New([]string{"", ""})
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("rejects short secret", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.New([]string{"short"})
		assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
	})

	t.Run("from config", func(t *testing.T) {
		t.Parallel()

		cfg := cookie.DefaultConfig()
		cfg.Secrets = " " + testSecret + " , ," + testSecret2
		cfg.Domain = "example.com"

		m, err := cookie.NewFromConfig(cfg)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, httptest.NewRequest(http.MethodGet, "/", nil), "k", "v"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "example.com", cookies[0].Domain)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	})

	t.Run("from config without secrets fails", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.NewFromConfig(cookie.DefaultConfig())
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})
}

func TestManager_BasicOperations(t *testing.T) {
	t.Parallel()

	t.Run("set and get cookie", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		err = m.Set(w, httptest.NewRequest(http.MethodGet, "/", nil), "test", "c=de|uic=de")
		require.NoError(t, err)

		value, err := m.Get(replay(w), "test")
		require.NoError(t, err)
		assert.Equal(t, "c=de|uic=de", value)
	})

	t.Run("options override defaults", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		err = m.Set(w, httptest.NewRequest(http.MethodGet, "/", nil), "pref", "x",
			cookie.WithHTTPOnly(false),
			cookie.WithMaxAge(3600),
			cookie.WithPath("/app"),
			cookie.WithSecure(true),
		)
		require.NoError(t, err)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.False(t, cookies[0].HttpOnly)
		assert.Equal(t, 3600, cookies[0].MaxAge)
		assert.Equal(t, "/app", cookies[0].Path)
		assert.True(t, cookies[0].Secure)
		assert.False(t, cookies[0].Expires.IsZero())
	})

	t.Run("cookie not found", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "nonexistent")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("delete cookie", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		m.Delete(w, "test")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "test", cookies[0].Name)
		assert.Equal(t, "", cookies[0].Value)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.NewWithOptions([]string{testSecret}, nil, cookie.WithMaxSize(64))
		require.NoError(t, err)

		w := httptest.NewRecorder()
		err = m.Set(w, httptest.NewRequest(http.MethodGet, "/", nil), "big", strings.Repeat("a", 100))

		var tooLarge cookie.ErrCookieTooLarge
		require.ErrorAs(t, err, &tooLarge)
		assert.Equal(t, "big", tooLarge.Name)
		assert.Equal(t, 64, tooLarge.Max)
		assert.Empty(t, w.Result().Cookies())
	})
}

func TestManager_SignedCookies(t *testing.T) {
	t.Parallel()

	t.Run("set and get signed cookie", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, httptest.NewRequest(http.MethodGet, "/", nil), "signed", "secret-value"))

		value, err := m.GetSigned(replay(w), "signed")
		require.NoError(t, err)
		assert.Equal(t, "secret-value", value)
	})

	t.Run("detect tampering", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, httptest.NewRequest(http.MethodGet, "/", nil), "signed", "secret-value"))

		signedValue, err := m.Get(replay(w), "signed")
		require.NoError(t, err)

		parts := strings.Split(signedValue, "|")
		require.Len(t, parts, 2)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "signed", Value: parts[0] + "|tampered-signature"})

		_, err = m.GetSigned(r, "signed")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("malformed value", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "signed", Value: "no-separator"})

		_, err = m.GetSigned(r, "signed")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})

	t.Run("key rotation", func(t *testing.T) {
		t.Parallel()

		old, err := cookie.New([]string{testSecret2})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, old.SetSigned(w, httptest.NewRequest(http.MethodGet, "/", nil), "signed", "v"))

		rotated, err := cookie.New([]string{testSecret, testSecret2})
		require.NoError(t, err)

		value, err := rotated.GetSigned(replay(w), "signed")
		require.NoError(t, err)
		assert.Equal(t, "v", value)
	})
}
