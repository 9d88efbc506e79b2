package middleware

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/nyumbani/property-dashboard/rbac"
	"github.com/nyumbani/property-dashboard/tokens"
)

// Context key type to avoid collisions
type contextKey string

const (
	// ClaimsKey is the context key for validated token claims
	ClaimsKey contextKey = "claims"

	// RoleKey is the context key for the caller's parsed role
	RoleKey contextKey = "role"
)

// GetRequestIDFromContext retrieves the request ID set by chi's RequestID middleware
func GetRequestIDFromContext(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// GetClaimsFromContext retrieves token claims from context
func GetClaimsFromContext(ctx context.Context) *tokens.ParsedClaims {
	if val := ctx.Value(ClaimsKey); val != nil {
		if claims, ok := val.(*tokens.ParsedClaims); ok {
			return claims
		}
	}
	return nil
}

// WithClaims adds token claims to the context
func WithClaims(ctx context.Context, claims *tokens.ParsedClaims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetRoleFromContext retrieves the caller's role. The second result is false
// when ExtractRole has not run or rejected the request.
func GetRoleFromContext(ctx context.Context) (rbac.Role, bool) {
	role, ok := ctx.Value(RoleKey).(rbac.Role)
	return role, ok && role.Valid()
}

// WithRole adds the caller's role to the context
func WithRole(ctx context.Context, role rbac.Role) context.Context {
	return context.WithValue(ctx, RoleKey, role)
}
