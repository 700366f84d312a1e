// Package context provides request-scoped value extraction.
package context

import (
	"context"
)

// UserContext contains authenticated caller information resolved from
// the signed credential. The token itself is the source of truth for
// the role; no database round trip happens per request.
type UserContext struct {
	UserID   string
	Username string
	Email    string
	Role     string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}
