package session

import (
	"context"
	"maps"
)

// Values is session data organised as string keys and values.
type Values map[string]string

type sessionContextKey struct{}

// WithSession returns a copy of ctx carrying sess.
func WithSession[Data any](ctx context.Context, sess *Session[Data]) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// FromContext returns the session stored by WithSession.
func FromContext[Data any](ctx context.Context) (*Session[Data], bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*Session[Data])
	return sess, ok && sess != nil
}

// ContextValues reads and writes keys of the Values session found in the context.
// Changes are persisted when the session middleware stores the session after the request.
type ContextValues struct{}

// Get returns the value stored under key.
func (ContextValues) Get(ctx context.Context, key string) ([]byte, bool, error) {
	sess, ok := FromContext[Values](ctx)
	if !ok {
		return nil, false, ErrNoSession
	}
	v, ok := sess.Data[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

// Set stores value under key, replacing any previous value.
func (ContextValues) Set(ctx context.Context, key string, value []byte) error {
	sess, ok := FromContext[Values](ctx)
	if !ok {
		return ErrNoSession
	}
	data := maps.Clone(sess.Data)
	if data == nil {
		data = make(Values, 1)
	}
	data[key] = string(value)
	sess.SetData(data)
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (ContextValues) Delete(ctx context.Context, key string) error {
	sess, ok := FromContext[Values](ctx)
	if !ok {
		return ErrNoSession
	}
	if _, exists := sess.Data[key]; !exists {
		return nil
	}
	data := maps.Clone(sess.Data)
	delete(data, key)
	sess.SetData(data)
	return nil
}
