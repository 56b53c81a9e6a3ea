// Package culture resolves the active display culture of a request from a cookie
// and an ordered allow-list of enabled cultures.
//
// The allow-list comes from a LanguageSource (typically a languages table filtered by an enabled
// flag and ordered by a sequence number). The first entry is the default culture.
//
// The cookie value uses the two-part locale preference encoding "c=<culture>|uic=<ui culture>",
// which keeps the cookie readable by locale negotiation middleware that understands that format.
//
// # Fallback policy
//
// Current never fails because of client state. A missing cookie, a value that cannot be decoded,
// or a culture that is no longer enabled all resolve to the first enabled culture.
// Only errors of the LanguageSource are returned.
//
// # Usage
//
//	resolver := culture.New(languages, cookieManager,
//		culture.WithCookieName("culture"),
//		culture.WithLogger(log),
//	)
//
//	// Persist an explicit choice (or refresh the current one when candidate is empty)
//	c, err := resolver.Set(w, r, r.FormValue("culture"))
//
//	// Resolve for the current request
//	c, err := resolver.Current(r)
//	ctx := culture.WithContext(r.Context(), c)
//
// An empty allow-list is a configuration error and is reported as ErrNoCultures.
package culture
