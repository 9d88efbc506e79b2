package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nyumbani/property-dashboard/rbac"
	"github.com/nyumbani/property-dashboard/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockTokenValidator is a mock implementation of TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(ctx context.Context, token string) (*tokens.ParsedClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokens.ParsedClaims), args.Error(1)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	logger := zap.NewNop()

	t.Run("valid token in Authorization header allows request", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		middleware := NewAuthMiddleware(mockValidator, logger)

		claims := &tokens.ParsedClaims{Sub: "user-123", Email: "user@example.com", Role: "landlord"}
		mockValidator.On("ValidateToken", mock.Anything, "valid-token").Return(claims, nil)

		handler := middleware.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			extracted := GetClaimsFromContext(r.Context())
			assert.NotNil(t, extracted)
			assert.Equal(t, claims.Sub, extracted.Sub)
			assert.Equal(t, claims.Role, extracted.Role)
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockValidator.AssertExpectations(t)
	})

	t.Run("valid token in cookie allows request", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		middleware := NewAuthMiddleware(mockValidator, logger)

		claims := &tokens.ParsedClaims{Sub: "user-456", Role: "tenant"}
		mockValidator.On("ValidateToken", mock.Anything, "cookie-token-value").Return(claims, nil)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "cookie-token-value"})
		w := httptest.NewRecorder()

		middleware.RequireAuth(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockValidator.AssertExpectations(t)
	})

	t.Run("header takes precedence over cookie", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		middleware := NewAuthMiddleware(mockValidator, logger)

		mockValidator.On("ValidateToken", mock.Anything, "header-token").
			Return(&tokens.ParsedClaims{Sub: "u", Role: "tenant"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer header-token")
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "cookie-token"})
		w := httptest.NewRecorder()

		middleware.RequireAuth(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockValidator.AssertExpectations(t)
	})

	t.Run("missing token returns 401", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		middleware := NewAuthMiddleware(mockValidator, logger)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		middleware.RequireAuth(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockValidator.AssertNotCalled(t, "ValidateToken", mock.Anything, mock.Anything)
	})

	t.Run("invalid authorization header format returns 401", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		middleware := NewAuthMiddleware(mockValidator, logger)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()

		middleware.RequireAuth(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token returns 401", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		middleware := NewAuthMiddleware(mockValidator, logger)

		mockValidator.On("ValidateToken", mock.Anything, "expired-token").Return(nil, tokens.ErrTokenExpired)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer expired-token")
		w := httptest.NewRecorder()

		middleware.RequireAuth(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid or expired token")
	})
}

func TestExtractRole(t *testing.T) {
	logger := zap.NewNop()
	middleware := NewAuthMiddleware(new(MockTokenValidator), logger)

	t.Run("known role is added to context", func(t *testing.T) {
		handler := middleware.ExtractRole(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, rbac.RoleCaretaker, role)
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req = req.WithContext(WithClaims(req.Context(), &tokens.ParsedClaims{Sub: "u", Role: " Caretaker"}))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown role is forbidden", func(t *testing.T) {
		for _, raw := range []string{"", "admin", "superuser"} {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req = req.WithContext(WithClaims(req.Context(), &tokens.ParsedClaims{Sub: "u", Role: raw}))
			w := httptest.NewRecorder()

			middleware.ExtractRole(okHandler()).ServeHTTP(w, req)
			assert.Equal(t, http.StatusForbidden, w.Code, raw)
		}
	})

	t.Run("missing claims returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		middleware.ExtractRole(okHandler()).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetRoleFromContext(t *testing.T) {
	_, ok := GetRoleFromContext(context.Background())
	assert.False(t, ok)

	_, ok = GetRoleFromContext(WithRole(context.Background(), rbac.Role("admin")))
	assert.False(t, ok)

	role, ok := GetRoleFromContext(WithRole(context.Background(), rbac.RoleTenant))
	assert.True(t, ok)
	assert.Equal(t, rbac.RoleTenant, role)
}
