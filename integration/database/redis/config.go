package redis

import "time"

// Config provides environment-based configuration for the Redis client.
// An empty ConnectionURL means Redis is not used.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	SessionPrefix  string        `env:"REDIS_SESSION_PREFIX" envDefault:"sitekit:session:"`
}
