package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/sitekit/core/culture"
	"github.com/dmitrymomot/sitekit/core/logger"
	"github.com/dmitrymomot/sitekit/core/session"
	"github.com/dmitrymomot/sitekit/middleware"
	"github.com/dmitrymomot/sitekit/site"
	"github.com/dmitrymomot/sitekit/site/view"
)

// Handler returns the HTTP handler with every route and middleware attached.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /menu", a.handleMenu)
	mux.HandleFunc("GET /sidebar", a.handleSidebar)
	mux.HandleFunc("GET /culture", a.handleGetCulture)
	mux.HandleFunc("POST /culture", a.handleSetCulture)
	mux.HandleFunc("POST /login", a.handleLogin)
	mux.HandleFunc("POST /logout", a.handleLogout)
	mux.HandleFunc("GET /me", a.handleMe)
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	infra := func(r *http.Request) bool {
		return r.URL.Path == "/health" || r.URL.Path == "/metrics"
	}

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.LoggingWithConfig(middleware.LoggingConfig{Logger: a.logger, Skip: infra}),
		middleware.SessionWithConfig(middleware.SessionConfig[session.Values]{
			Skip:      infra,
			Manager:   a.sessions,
			Transport: a.transport,
			Logger:    a.logger,
		}),
		middleware.Culture(a.resolver, a.logger),
	)
}

func (a *App) handleMenu(w http.ResponseWriter, r *http.Request) {
	forest, err := a.site.Menu(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, forest)
}

func (a *App) handleSidebar(w http.ResponseWriter, r *http.Request) {
	forest, err := a.site.Menu(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	templ.Handler(view.Sidebar(forest)).ServeHTTP(w, r)
}

func (a *App) handleGetCulture(w http.ResponseWriter, r *http.Request) {
	cultures, err := a.site.Cultures(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	current, err := a.site.CurrentCulture(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"current":  current,
		"cultures": cultures,
	})
}

func (a *App) handleSetCulture(w http.ResponseWriter, r *http.Request) {
	written, err := a.site.SetCulture(w, r, strings.TrimSpace(r.FormValue("culture")))
	if errors.Is(err, culture.ErrInvalidCulture) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"culture": written})
}

func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := a.site.Authenticate(ctx, r.FormValue("account"), r.FormValue("password"))
	if errors.Is(err, site.ErrInvalidCredentials) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		a.fail(w, r, err)
		return
	}

	sess, ok := session.FromContext[session.Values](ctx)
	if !ok {
		a.fail(w, r, session.ErrNoSession)
		return
	}
	if err := sess.Authenticate(id); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.transport.Save(w, r, *sess); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.site.SetUserProfile(ctx, id); err != nil {
		a.fail(w, r, err)
		return
	}

	p, _, err := a.site.UserProfile(ctx)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.logger.InfoContext(ctx, "user signed in", logger.Component("site"), logger.UserID(id))
	writeJSON(w, http.StatusOK, p)
}

func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := a.site.ClearUserProfile(ctx); err != nil {
		a.fail(w, r, err)
		return
	}
	if sess, ok := session.FromContext[session.Values](ctx); ok {
		sess.Logout()
	}
	a.transport.Revoke(w)
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleMe(w http.ResponseWriter, r *http.Request) {
	p, ok, err := a.site.UserProfile(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not signed in"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := make(map[string]string)
	for name, err := range a.Healthcheck(r.Context()) {
		if err != nil {
			status = http.StatusServiceUnavailable
			body[name] = err.Error()
			a.logger.WarnContext(r.Context(), "healthcheck failed",
				logger.Component(name),
				logger.Error(errors.Join(ErrUnhealthy, err)),
			)
			continue
		}
		body[name] = "ok"
	}
	writeJSON(w, status, body)
}

func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.ErrorContext(r.Context(), "request failed",
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
		logger.Error(err),
	)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": http.StatusText(http.StatusInternalServerError)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
