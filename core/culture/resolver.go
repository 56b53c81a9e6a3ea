package culture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/sitekit/core/cookie"
	"github.com/dmitrymomot/sitekit/core/logger"
)

// Fallback reasons reported by the fallback counter.
const (
	reasonMissing   = "missing"
	reasonMalformed = "malformed"
	reasonUnknown   = "unknown"
)

// LanguageSource lists enabled cultures ordered by their sequence number.
type LanguageSource interface {
	EnabledLanguages(ctx context.Context) ([]string, error)
}

// CookieJar reads and writes request cookies. *cookie.Manager satisfies it.
type CookieJar interface {
	Get(r *http.Request, name string) (string, error)
	Set(w http.ResponseWriter, r *http.Request, name, value string, opts ...cookie.Option) error
}

// Resolver determines and persists the display culture of a request.
type Resolver struct {
	source     LanguageSource
	jar        CookieJar
	cookieName string
	maxAge     time.Duration
	logger     *slog.Logger
	registerer prometheus.Registerer
	fallbacks  *prometheus.CounterVec
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCookieName overrides the culture cookie name.
func WithCookieName(name string) Option {
	return func(r *Resolver) {
		if name != "" {
			r.cookieName = name
		}
	}
}

// WithMaxAge overrides the culture cookie lifetime.
func WithMaxAge(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.maxAge = d
		}
	}
}

// WithLogger sets the logger used to report fallbacks.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRegisterer registers the resolver metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(r *Resolver) {
		r.registerer = reg
	}
}

// New creates a Resolver reading enabled cultures from source and the cookie through jar.
func New(source LanguageSource, jar CookieJar, opts ...Option) *Resolver {
	r := &Resolver{
		source:     source,
		jar:        jar,
		cookieName: DefaultCookieName,
		maxAge:     DefaultMaxAge,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.fallbacks = promauto.With(r.registerer).NewCounterVec(prometheus.CounterOpts{
		Name: "sitekit_culture_fallbacks_total",
		Help: "Number of culture resolutions that fell back to the default culture.",
	}, []string{"reason"})

	return r
}

// CookieName returns the name of the culture cookie.
func (rs *Resolver) CookieName() string {
	return rs.cookieName
}

// Cultures returns the enabled cultures ordered by sequence number.
func (rs *Resolver) Cultures(ctx context.Context) ([]string, error) {
	cultures, err := rs.source.EnabledLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("culture: list enabled cultures: %w", err)
	}
	if len(cultures) == 0 {
		return nil, ErrNoCultures
	}
	return cultures, nil
}

// Current returns the culture stored in the request cookie when it is enabled,
// otherwise the first enabled culture.
func (rs *Resolver) Current(r *http.Request) (string, error) {
	ctx := r.Context()

	cultures, err := rs.Cultures(ctx)
	if err != nil {
		return "", err
	}

	c, reason := rs.fromCookie(r)
	if reason == "" && !slices.Contains(cultures, c) {
		reason = reasonUnknown
	}
	if reason != "" {
		rs.fallbacks.WithLabelValues(reason).Inc()
		rs.logger.DebugContext(ctx, "culture fallback",
			logger.Component("culture"),
			slog.String("reason", reason),
			slog.String("stored", c),
			logger.Culture(cultures[0]),
		)
		return cultures[0], nil
	}

	return c, nil
}

// Set writes the culture cookie and returns the culture written.
// An empty candidate keeps the culture already stored in the cookie,
// or the first enabled culture when the cookie is missing or unreadable.
func (rs *Resolver) Set(w http.ResponseWriter, r *http.Request, candidate string) (string, error) {
	candidate = strings.TrimSpace(candidate)

	if candidate != "" {
		if err := validateTag(candidate); err != nil {
			return "", err
		}
	} else {
		c, reason := rs.fromCookie(r)
		if reason == "" {
			candidate = c
		} else {
			cultures, err := rs.Cultures(r.Context())
			if err != nil {
				return "", err
			}
			candidate = cultures[0]
		}
	}

	err := rs.jar.Set(w, r, rs.cookieName, MakeCookieValue(candidate),
		cookie.WithMaxAge(int(rs.maxAge/time.Second)),
		cookie.WithHTTPOnly(false),
	)
	if err != nil {
		return "", fmt.Errorf("culture: write cookie: %w", err)
	}

	return candidate, nil
}

// fromCookie decodes the request cookie. A non-empty reason means nothing usable was stored.
func (rs *Resolver) fromCookie(r *http.Request) (string, string) {
	raw, err := rs.jar.Get(r, rs.cookieName)
	if err != nil {
		if !errors.Is(err, cookie.ErrCookieNotFound) {
			rs.logger.WarnContext(r.Context(), "failed to read culture cookie",
				logger.Component("culture"),
				logger.Error(err),
			)
		}
		return "", reasonMissing
	}

	c, ok := ParseCookieValue(raw)
	if !ok {
		return raw, reasonMalformed
	}
	return c, ""
}

// validateTag accepts well-formed BCP 47 tags, including well-formed tags with unknown subtags.
func validateTag(c string) error {
	_, err := language.Parse(c)
	if err == nil {
		return nil
	}
	var verr language.ValueError
	if errors.As(err, &verr) {
		return nil
	}
	return errors.Join(ErrInvalidCulture, err)
}
