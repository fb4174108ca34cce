// Package http provides HTTP handlers and middleware for authentication.
package http

import (
	"context"

	authDomain "github.com/zuxercoding99/social-media-api/internal/auth/domain"
)

// principalKey is a context key type for storing the resolved principal.
type principalKey struct{}

// WithPrincipal stores the resolved principal in the context.
// This is called by the authentication middleware for every request, whether
// the principal is authenticated or anonymous.
func WithPrincipal(ctx context.Context, principal authDomain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the resolved principal from the context.
// Returns the anonymous principal if none was set, so callers never need a
// nil check.
func GetPrincipal(ctx context.Context) authDomain.Principal {
	if principal, ok := ctx.Value(principalKey{}).(authDomain.Principal); ok {
		return principal
	}
	return authDomain.Anonymous()
}
