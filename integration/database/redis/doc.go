// Package redis provides Redis client initialization, health checking and a
// Redis-backed session store.
//
//   - Connect: creates a client from REDIS_URL and retries PING with exponential backoff
//   - Healthcheck: returns a ping function for the /health endpoint
//   - SessionStore: implements session.Store with JSON payloads and key expiry
//
// Only redis:// and rediss:// URLs are accepted.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := redis.NewSessionStore[session.Values](client, cfg.SessionPrefix)
//	manager := session.NewManager(store, 24*time.Hour, 5*time.Minute)
//
// Token rotation leaves the previous token index to expire on its own;
// GetByToken rejects it because the stored session carries the new token.
package redis
