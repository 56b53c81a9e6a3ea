package culture

import "context"

type cultureContextKey struct{}

// WithContext returns a copy of ctx carrying the resolved culture.
func WithContext(ctx context.Context, c string) context.Context {
	return context.WithValue(ctx, cultureContextKey{}, c)
}

// FromContext returns the culture stored by WithContext.
func FromContext(ctx context.Context) (string, bool) {
	c, ok := ctx.Value(cultureContextKey{}).(string)
	return c, ok && c != ""
}
