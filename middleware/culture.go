package middleware

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/sitekit/core/culture"
	"github.com/dmitrymomot/sitekit/core/logger"
)

// CultureResolver resolves the display culture of a request.
type CultureResolver interface {
	Current(r *http.Request) (string, error)
}

// Culture resolves the request culture once and stores it with culture.WithContext.
// The resolved value is also sent as Content-Language. Resolution failures are
// logged and the request continues without a culture.
func Culture(resolver CultureResolver, log *slog.Logger) Middleware {
	if log == nil {
		log = logger.Discard()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := resolver.Current(r)
			if err != nil {
				log.WarnContext(r.Context(), "failed to resolve culture",
					logger.Component("culture"),
					logger.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Content-Language", c)
			next.ServeHTTP(w, r.WithContext(culture.WithContext(r.Context(), c)))
		})
	}
}
