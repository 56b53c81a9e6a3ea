package app

import (
	"time"

	"github.com/dmitrymomot/sitekit/core/cookie"
	"github.com/dmitrymomot/sitekit/core/culture"
	"github.com/dmitrymomot/sitekit/core/logger"
	"github.com/dmitrymomot/sitekit/core/server"
	"github.com/dmitrymomot/sitekit/core/session"
	"github.com/dmitrymomot/sitekit/core/sessiontransport"
	"github.com/dmitrymomot/sitekit/integration/database/pg"
	"github.com/dmitrymomot/sitekit/integration/database/redis"
	"github.com/dmitrymomot/sitekit/pkg/hasher"
	"github.com/dmitrymomot/sitekit/store/sqlitestore"
)

// Database drivers accepted by DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config aggregates the configuration of every component.
type Config struct {
	Logger        logger.Config
	Hasher        hasher.Config
	Database      DatabaseConfig
	Postgres      pg.Config
	SQLite        sqlitestore.Config
	Redis         redis.Config
	Cookie        cookie.Config
	Session       session.Config
	SessionCookie sessiontransport.CookieConfig
	Culture       culture.Config
	Server        server.Config
}

// DatabaseConfig selects the repository backend.
type DatabaseConfig struct {
	Driver                 string        `env:"DB_DRIVER" envDefault:"sqlite"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"`
}

// DefaultConfig returns a configuration with every default applied and no secrets.
func DefaultConfig() Config {
	return Config{
		Logger:        logger.Config{Env: "development", Level: "info"},
		Database:      DatabaseConfig{Driver: DriverSQLite, SessionCleanupInterval: 10 * time.Minute},
		SQLite:        sqlitestore.Config{Path: "sitekit.db"},
		Cookie:        cookie.DefaultConfig(),
		Session:       session.DefaultConfig(),
		SessionCookie: sessiontransport.DefaultCookieConfig(),
		Culture:       culture.Config{CookieName: culture.DefaultCookieName, MaxAge: culture.DefaultMaxAge},
		Server:        server.DefaultConfig(),
	}
}
