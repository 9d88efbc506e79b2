package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/nyumbani/property-dashboard/rbac"
	"github.com/nyumbani/property-dashboard/services"
	"github.com/nyumbani/property-dashboard/tokens"
	"go.uber.org/zap"
)

// TokenValidator defines the interface for validating session tokens
type TokenValidator interface {
	// ValidateToken validates a token and returns its claims
	ValidateToken(ctx context.Context, token string) (*tokens.ParsedClaims, error)
}

// AuthMiddleware provides authentication middleware functionality
type AuthMiddleware struct {
	validator TokenValidator
	logger    *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(validator TokenValidator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		logger:    logger,
	}
}

// authTokenCookieName is the cookie the dashboard frontend stores the session token in.
// The Authorization header takes precedence.
const authTokenCookieName = "auth_token"

// RequireAuth is a middleware that requires a valid session token
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		token := extractToken(r)
		if token == "" {
			m.logger.Warn("missing token",
				zap.String("request_id", requestID))
			_ = writeError(w, services.ErrUnauthorized)
			return
		}

		claims, err := m.validator.ValidateToken(ctx, token)
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = writeError(w, services.ErrInvalidToken)
			return
		}

		ctx = WithClaims(ctx, claims)

		m.logger.Debug("authentication successful",
			zap.String("request_id", requestID),
			zap.String("sub", claims.Sub))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ExtractRole resolves the role claim into a known role.
// Must run after RequireAuth. Unknown roles are rejected with 403.
func (m *AuthMiddleware) ExtractRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		claims := GetClaimsFromContext(ctx)
		if claims == nil {
			m.logger.Error("claims not found in context",
				zap.String("request_id", requestID))
			_ = writeError(w, services.ErrUnauthorized)
			return
		}

		role, err := rbac.ParseRole(claims.Role)
		if err != nil {
			m.logger.Warn("unrecognized role in token",
				zap.String("request_id", requestID),
				zap.String("sub", claims.Sub),
				zap.String("role", claims.Role))
			_ = writeError(w, services.ErrInvalidRole)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithRole(ctx, role)))
	})
}

// extractToken extracts the token from the Authorization header ("Bearer TOKEN")
// or the auth_token cookie
func extractToken(r *http.Request) string {
	if token := extractBearerToken(r); token != "" {
		return token
	}
	if cookie, err := r.Cookie(authTokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
