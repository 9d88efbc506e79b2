package middleware

import (
	"context"
	"net/http"

	"github.com/nyumbani/property-dashboard/rbac"
	"github.com/nyumbani/property-dashboard/services"
	"github.com/nyumbani/property-dashboard/services/access"
	"go.uber.org/zap"
)

// AccessChecker evaluates access checks
type AccessChecker interface {
	Check(ctx context.Context, req access.CheckRequest) (*access.Decision, error)
}

// AccessMiddleware gates routes on permissions, menu sections and data-access flags
type AccessMiddleware struct {
	checker AccessChecker
	logger  *zap.Logger
}

// NewAccessMiddleware creates a new AccessMiddleware
func NewAccessMiddleware(checker AccessChecker, logger *zap.Logger) *AccessMiddleware {
	return &AccessMiddleware{
		checker: checker,
		logger:  logger,
	}
}

// CallerFromRequest describes the authenticated caller of r.
// Role falls back to the raw claim when ExtractRole has not run.
func CallerFromRequest(r *http.Request) access.Caller {
	ctx := r.Context()
	c := access.Caller{
		RequestID: GetRequestIDFromContext(ctx),
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
	if claims := GetClaimsFromContext(ctx); claims != nil {
		c.Subject = claims.Sub
		c.Role = claims.Role
	}
	if role, ok := GetRoleFromContext(ctx); ok {
		c.Role = string(role)
	}
	return c
}

// RequirePermission allows the request only if the caller's role holds id
func (m *AccessMiddleware) RequirePermission(id rbac.PermissionID) func(http.Handler) http.Handler {
	return m.require(access.CheckRequest{Permission: string(id)})
}

// RequireMenu allows the request only if the caller's role may open the menu section
func (m *AccessMiddleware) RequireMenu(id rbac.MenuID) func(http.Handler) http.Handler {
	return m.require(access.CheckRequest{Menu: string(id)})
}

// RequireFeature allows the request only if the caller's role has the data-access flag
func (m *AccessMiddleware) RequireFeature(f rbac.Feature) func(http.Handler) http.Handler {
	return m.require(access.CheckRequest{Feature: string(f)})
}

func (m *AccessMiddleware) require(check access.CheckRequest) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := check
			req.Caller = CallerFromRequest(r)

			decision, err := m.checker.Check(r.Context(), req)
			if err != nil {
				m.logger.Error("access check failed",
					zap.String("request_id", req.Caller.RequestID),
					zap.Error(err))
				_ = writeError(w, services.ErrInternal)
				return
			}

			if !decision.Allowed {
				m.logger.Warn("access denied",
					zap.String("request_id", req.Caller.RequestID),
					zap.String("role", req.Caller.Role),
					zap.String("path", r.URL.Path))
				_ = writeError(w, services.ErrInsufficientPermissions)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
