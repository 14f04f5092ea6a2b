package middleware

import (
	"context"
	"time"
)

type contextKey struct{ name string }

var identityKey = contextKey{"identity"}

// Identity is the authenticated caller of a protected request.
type Identity struct {
	AccountID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity returns the Identity from ctx and true if set; otherwise a zero Identity, false.
func GetIdentity(ctx context.Context) (Identity, bool) {
	v, ok := ctx.Value(identityKey).(Identity)
	return v, ok
}
