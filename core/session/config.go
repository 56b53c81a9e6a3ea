package session

import (
	"errors"
	"time"
)

// Config provides environment-based configuration for the session manager.
type Config struct {
	TTL           time.Duration `env:"SESSION_TTL" envDefault:"24h"`            // idle timeout
	TouchInterval time.Duration `env:"SESSION_TOUCH_INTERVAL" envDefault:"5m"` // 0 disables touching
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		TTL:           24 * time.Hour,
		TouchInterval: 5 * time.Minute,
	}
}

// NewFromConfig creates a Manager backed by store.
func NewFromConfig[Data any](cfg Config, store Store[Data]) (*Manager[Data], error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	return NewManager(store, cfg.TTL, cfg.TouchInterval), nil
}
