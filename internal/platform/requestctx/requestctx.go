// Package requestctx carries the authenticated admin identity through a request.
package requestctx

import "context"

// userIDContextKey is the context key for authenticated admin identity.
type userIDContextKey struct{}

// tokenContextKey is the context key for the platform API bearer token.
type tokenContextKey struct{}

// WithUserID stores an admin identifier in context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userIDContextKey{}, userID)
}

// UserIDFromContext returns the admin identifier stored in context.
func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(userIDContextKey{}).(string)
	return value
}

// WithToken stores the platform API bearer token in context.
func WithToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext returns the bearer token stored in context.
func TokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(tokenContextKey{}).(string)
	return value
}
