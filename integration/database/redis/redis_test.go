package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sitekit/core/session"
	"github.com/dmitrymomot/sitekit/integration/database/redis"
)

var _ session.Store[session.Values] = (*redis.SessionStore[session.Values])(nil)

func TestConnectValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want error
	}{
		{"empty", "", redis.ErrEmptyConnectionURL},
		{"wrong scheme", "http://localhost:6379", redis.ErrFailedToParseRedisConnString},
		{"bad database", "redis://localhost:6379/notanumber", redis.ErrFailedToParseRedisConnString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: tt.url})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConnectUnreachable(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  "redis://127.0.0.1:1/0",
		RetryAttempts:  0,
		RetryInterval:  time.Millisecond,
		ConnectTimeout: 2 * time.Second,
	})
	assert.ErrorIs(t, err, redis.ErrRedisNotReady)
}
