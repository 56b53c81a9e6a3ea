package culture

import "time"

// DefaultCookieName is the name of the culture cookie unless configured otherwise.
const DefaultCookieName = "culture"

// DefaultMaxAge is how long the culture cookie lives after the last write.
const DefaultMaxAge = 365 * 24 * time.Hour

// Config provides environment-based configuration for the resolver.
type Config struct {
	CookieName string        `env:"CULTURE_COOKIE_NAME" envDefault:"culture"`
	MaxAge     time.Duration `env:"CULTURE_COOKIE_MAX_AGE" envDefault:"8760h"`
}

// NewFromConfig creates a Resolver from configuration.
func NewFromConfig(cfg Config, source LanguageSource, jar CookieJar, opts ...Option) *Resolver {
	configOpts := make([]Option, 0, 2+len(opts))
	if cfg.CookieName != "" {
		configOpts = append(configOpts, WithCookieName(cfg.CookieName))
	}
	if cfg.MaxAge > 0 {
		configOpts = append(configOpts, WithMaxAge(cfg.MaxAge))
	}
	return New(source, jar, append(configOpts, opts...)...)
}
