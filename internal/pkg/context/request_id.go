// Package context carries request-scoped values between transport and the
// layers below it without importing net/http anywhere but transport.
package context

import "context"

// key is unexported so no other package can collide with our values.
type key int

const requestIDKey key = iota

// WithRequestID stores the correlation id for the rest of the request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the stored correlation id, or "" when the context
// never passed through the request-id middleware.
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
