package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> any (T value)
	loadMu     sync.Mutex
)

// Load parses environment variables into cfg. The first call for a type parses the
// environment; later calls for the same type copy the cached value.
// A .env file in the working directory is loaded once, without overriding real variables.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	typ := reflect.TypeFor[T]()
	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}

	loadMu.Lock()
	defer loadMu.Unlock()

	// another goroutine may have loaded it while we waited
	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}

	dotenvOnce.Do(func() {
		// missing .env is fine
		_ = godotenv.Load()
	})

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return fmt.Errorf("%w: %T: %w", ErrParse, loaded, err)
	}

	cache.Store(typ, loaded)
	*cfg = loaded
	return nil
}

// MustLoad is like Load but panics on error. Use it during startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops all cached configurations. Intended for tests.
func Reset() {
	loadMu.Lock()
	defer loadMu.Unlock()
	cache.Range(func(key, _ any) bool {
		cache.Delete(key)
		return true
	})
}
