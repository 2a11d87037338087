package session

import (
	"context"

	"github.com/goliatone/go-router"
)

var tokenCtxKey = &contextKey{"token"}

type contextKey struct {
	name string
}

// WithToken sets the Token in the given context
func WithToken(ctx context.Context, t *Token) context.Context {
	return context.WithValue(ctx, tokenCtxKey, t)
}

// TokenFromContext finds the request-scoped Token in a standard context.
func TokenFromContext(ctx context.Context) (*Token, bool) {
	raw, ok := ctx.Value(tokenCtxKey).(*Token)
	return raw, ok
}

// FromRouter extracts the request-scoped Token from the router context.
func FromRouter(rc router.Context, key string) (*Token, bool) {
	if key == "" {
		key = DefaultContextKey
	}
	raw := rc.Locals(key)
	if raw == nil {
		return nil, false
	}
	t, ok := raw.(*Token)
	return t, ok
}
