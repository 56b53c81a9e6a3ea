// Package middleware provides net/http middleware for the site host.
//
//   - RequestID: assigns a request id and echoes it in the X-Request-ID header
//   - Logging: structured request/response logging with slow request warnings
//   - Session: loads the session through a transport, stores it in the context and persists it afterwards
//   - Culture: resolves the display culture once per request and carries it in the context
//
// Middlewares compose with Chain:
//
//	h := middleware.Chain(mux,
//		middleware.RequestID(),
//		middleware.Logging(log),
//		middleware.Session(manager, transport, log),
//		middleware.Culture(resolver, log),
//	)
//
// The first middleware passed to Chain is the outermost one.
package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies mws to h so that mws[0] runs first.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
