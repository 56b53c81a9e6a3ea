// Package cookie provides HTTP cookie management with secure defaults and HMAC signing.
//
// A Manager holds default attributes (path, domain, SameSite, HttpOnly, Secure, max-age) that are
// applied to every cookie it writes, and one or more secrets used to sign values.
// The first secret signs new cookies; all secrets are tried on verification so keys can be rotated.
//
// # Usage
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")},
//		cookie.WithSecure(true),
//		cookie.WithSameSite(http.SameSiteLaxMode),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Plain cookies
//	err = m.Set(w, r, "theme", "dark", cookie.WithMaxAge(3600))
//	value, err := m.Get(r, "theme")
//
//	// Signed cookies detect tampering
//	err = m.SetSigned(w, r, "__session", token, cookie.WithHTTPOnly(true))
//	token, err := m.GetSigned(r, "__session")
//
//	// Deletion
//	m.Delete(w, "theme")
//
// # Configuration
//
// NewFromConfig builds a Manager from environment variables:
//
//	type Config struct {
//		Secrets  string        `env:"COOKIE_SECRETS"`   // comma-separated, first one signs
//		Path     string        `env:"COOKIE_PATH" envDefault:"/"`
//		Domain   string        `env:"COOKIE_DOMAIN"`
//		MaxAge   int           `env:"COOKIE_MAX_AGE" envDefault:"0"`
//		Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
//		HttpOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
//		SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"`
//		MaxSize  int           `env:"COOKIE_MAX_SIZE" envDefault:"4096"`
//	}
//
// # Errors
//
//   - ErrNoSecret, ErrSecretTooShort: invalid manager configuration
//   - ErrCookieNotFound: the request carries no cookie with that name
//   - ErrInvalidFormat, ErrInvalidSignature: signed value is malformed or tampered with
//   - ErrCookieTooLarge: the serialized cookie exceeds the size limit
package cookie
