package middleware

import (
	"context"

	pkgauth "github.com/ideabank/ideabank-backend/pkg/auth"
)

type contextKey string

const (
	ctxIdentity contextKey = "identity"
	ctxAccessID contextKey = "access_id"
)

// IdentityFromContext returns the authenticated caller seeded by Auth.
// The second return is false on unauthenticated paths.
func IdentityFromContext(ctx context.Context) (pkgauth.Identity, bool) {
	if ctx == nil {
		return pkgauth.Identity{}, false
	}
	identity, ok := ctx.Value(ctxIdentity).(pkgauth.Identity)
	return identity, ok
}

// WithIdentity injects the caller identity into the context.
func WithIdentity(ctx context.Context, identity pkgauth.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, identity)
}

// AccessIDFromContext returns the session identifier (jti) of the request's
// token, empty on unauthenticated paths.
func AccessIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessID).(string); ok {
		return v
	}
	return ""
}

// WithAccessID injects the session identifier into the context.
func WithAccessID(ctx context.Context, accessID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAccessID, accessID)
}
