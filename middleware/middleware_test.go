package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitekit/core/cookie"
	"github.com/dmitrymomot/sitekit/core/culture"
	"github.com/dmitrymomot/sitekit/core/logger"
	"github.com/dmitrymomot/sitekit/core/session"
	"github.com/dmitrymomot/sitekit/core/sessiontransport"
	"github.com/dmitrymomot/sitekit/middleware"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) middleware.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := middleware.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("a"), mark("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates id", func(t *testing.T) {
		t.Parallel()

		var seen string
		h := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen, _ = middleware.GetRequestID(r.Context())
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
	})

	t.Run("reuses incoming id", func(t *testing.T) {
		t.Parallel()

		h := middleware.RequestIDWithConfig(middleware.RequestIDConfig{UseExisting: true})(
			http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
	})

	t.Run("extractor", func(t *testing.T) {
		t.Parallel()

		_, ok := middleware.RequestIDExtractor(context.Background())
		assert.False(t, ok)
	})
}

func TestLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter())

	h := middleware.Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}), middleware.RequestID(), middleware.Logging(log))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pot", nil))

	out := buf.String()
	assert.Contains(t, out, `"status_code":418`)
	assert.Contains(t, out, `"path":"/pot"`)
	assert.Contains(t, out, `"request_id"`)
	assert.Contains(t, out, `"bytes_out":15`)
}

func TestLoggingServerError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter())
	h := middleware.Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, buf.String(), `"level":"ERROR"`)
}

func newSessionStack(t *testing.T) (*session.Manager[session.Values], *sessiontransport.Cookie[session.Values], *session.MemoryStore[session.Values]) {
	t.Helper()
	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	store := session.NewMemoryStore[session.Values]()
	mgr := session.NewManager[session.Values](store, time.Hour, time.Minute)
	return mgr, sessiontransport.NewCookie(mgr, cookies, "sid"), store
}

func TestSession(t *testing.T) {
	t.Parallel()

	mgr, transport, store := newSessionStack(t)
	var kv session.ContextValues

	h := middleware.Session(mgr, transport, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			require.NoError(t, kv.Set(r.Context(), "greeting", []byte("hello")))
			return
		}
		v, ok, err := kv.Get(r.Context(), "greeting")
		require.NoError(t, err)
		if ok {
			_, _ = w.Write(v)
		}
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "hello", rec.Body.String())

	n, err := store.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSessionLogoutRemovesStoredSession(t *testing.T) {
	t.Parallel()

	mgr, transport, store := newSessionStack(t)
	var id session.Session[session.Values]

	h := middleware.Session(mgr, transport, nil)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext[session.Values](r.Context())
		require.True(t, ok)
		id = *sess
		sess.Logout()
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := store.GetByID(context.Background(), id.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

type failingTransport struct{}

func (failingTransport) Load(http.ResponseWriter, *http.Request) (session.Session[session.Values], error) {
	return session.Session[session.Values]{}, errors.New("no entropy")
}

func (failingTransport) Save(http.ResponseWriter, *http.Request, session.Session[session.Values]) error {
	return nil
}

func TestSessionLoadFailure(t *testing.T) {
	t.Parallel()

	mgr, _, _ := newSessionStack(t)
	called := false
	h := middleware.Session[session.Values](mgr, failingTransport{}, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type resolverFunc func(r *http.Request) (string, error)

func (f resolverFunc) Current(r *http.Request) (string, error) { return f(r) }

func TestCulture(t *testing.T) {
	t.Parallel()

	t.Run("stores resolved culture", func(t *testing.T) {
		t.Parallel()

		var got string
		h := middleware.Culture(resolverFunc(func(*http.Request) (string, error) { return "de", nil }), nil)(
			http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got, _ = culture.FromContext(r.Context())
			}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "de", got)
		assert.Equal(t, "de", rec.Header().Get("Content-Language"))
	})

	t.Run("continues on failure", func(t *testing.T) {
		t.Parallel()

		ok := true
		h := middleware.Culture(resolverFunc(func(*http.Request) (string, error) { return "", culture.ErrNoCultures }), nil)(
			http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				_, ok = culture.FromContext(r.Context())
			}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.False(t, ok)
	})
}
