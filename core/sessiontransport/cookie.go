package sessiontransport

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/sitekit/core/cookie"
	"github.com/dmitrymomot/sitekit/core/session"
)

// Cookie provides HTTP cookie-based session transport.
// It stores Session.Token as the cookie value (signed via cookie.Manager).
type Cookie[Data any] struct {
	manager   *session.Manager[Data]
	cookieMgr *cookie.Manager
	name      string
	secure    bool
}

// NewCookie creates a new cookie-based session transport.
func NewCookie[Data any](mgr *session.Manager[Data], cookieMgr *cookie.Manager, name string) *Cookie[Data] {
	if name == "" {
		name = DefaultCookieConfig().CookieName
	}
	return &Cookie[Data]{
		manager:   mgr,
		cookieMgr: cookieMgr,
		name:      name,
		secure:    true,
	}
}

// Load returns the session referenced by the request cookie.
// A new anonymous session is created and its cookie written when no valid one exists.
func (c *Cookie[Data]) Load(w http.ResponseWriter, r *http.Request) (session.Session[Data], error) {
	if token, err := c.cookieMgr.GetSigned(r, c.name); err == nil {
		if sess, err := c.manager.GetByToken(r.Context(), token); err == nil {
			return sess, nil
		}
	}

	sess, err := c.manager.New()
	if err != nil {
		return session.Session[Data]{}, err
	}
	if err := c.Save(w, r, sess); err != nil {
		return session.Session[Data]{}, err
	}
	return sess, nil
}

// Save writes the session token to the signed cookie.
// The cookie lifetime follows the session expiration.
func (c *Cookie[Data]) Save(w http.ResponseWriter, r *http.Request, sess session.Session[Data]) error {
	until := time.Until(sess.ExpiresAt)
	if until <= 0 {
		return fmt.Errorf("%w (expired %v ago)", ErrExpiredSession, -until)
	}

	return c.cookieMgr.SetSigned(w, r, c.name, sess.Token,
		cookie.WithHTTPOnly(true),
		cookie.WithSecure(c.secure),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithMaxAge(int(until.Seconds())),
	)
}

// Revoke removes the session cookie from the client.
func (c *Cookie[Data]) Revoke(w http.ResponseWriter) {
	c.cookieMgr.Delete(w, c.name)
}

// Name returns the cookie name.
func (c *Cookie[Data]) Name() string {
	return c.name
}
