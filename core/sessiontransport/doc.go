// Package sessiontransport carries session tokens between client and server.
//
// Cookie stores Session.Token in a signed HTTP cookie managed by cookie.Manager.
// Load always yields a usable session: when the cookie is missing, tampered,
// expired or unknown to the store, a fresh anonymous session is created and its
// cookie is written right away so it is part of the response headers.
//
//	transport := sessiontransport.NewCookie(manager, cookies, "__session")
//	sess, err := transport.Load(w, r)
package sessiontransport
