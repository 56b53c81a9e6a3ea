package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/sitekit/core/logger"
	"github.com/dmitrymomot/sitekit/core/session"
)

// SessionTransport loads and saves sessions on the HTTP exchange.
type SessionTransport[Data any] interface {
	Load(w http.ResponseWriter, r *http.Request) (session.Session[Data], error)
	Save(w http.ResponseWriter, r *http.Request, sess session.Session[Data]) error
}

// SessionConfig configures the session middleware.
type SessionConfig[Data any] struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
	// Manager persists sessions after the request
	Manager *session.Manager[Data]
	// Transport carries the session token
	Transport SessionTransport[Data]
	// Logger receives load and persist failures (default: discard)
	Logger *slog.Logger
}

// Session loads the request session, exposes it via session.FromContext and
// stores it once the wrapped handler returns.
func Session[Data any](mgr *session.Manager[Data], transport SessionTransport[Data], log *slog.Logger) Middleware {
	return SessionWithConfig(SessionConfig[Data]{
		Manager:   mgr,
		Transport: transport,
		Logger:    log,
	})
}

// SessionWithConfig creates a session middleware with custom configuration.
func SessionWithConfig[Data any](cfg SessionConfig[Data]) Middleware {
	if cfg.Manager == nil || cfg.Transport == nil {
		panic("middleware: session manager and transport are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := cfg.Transport.Load(w, r)
			if err != nil {
				cfg.Logger.ErrorContext(r.Context(), "failed to load session",
					logger.Component("session"),
					logger.Error(err),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if cfg.Manager.Touch(&sess) {
				if err := cfg.Transport.Save(w, r, sess); err != nil {
					cfg.Logger.WarnContext(r.Context(), "failed to refresh session cookie",
						logger.Component("session"),
						logger.SessionID(sess.ID),
						logger.Error(err),
					)
				}
			}

			ctx := session.WithSession(r.Context(), &sess)
			next.ServeHTTP(w, r.WithContext(ctx))

			// the client may be gone; persisting must still complete
			storeCtx := context.WithoutCancel(ctx)
			if err := cfg.Manager.Store(storeCtx, sess); err != nil && !errors.Is(err, session.ErrNotAuthenticated) {
				cfg.Logger.ErrorContext(storeCtx, "failed to store session",
					logger.Component("session"),
					logger.SessionID(sess.ID),
					logger.Error(err),
				)
			}
		})
	}
}
