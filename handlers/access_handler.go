package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nyumbani/property-dashboard/middleware"
	"github.com/nyumbani/property-dashboard/models"
	"github.com/nyumbani/property-dashboard/rbac"
	"github.com/nyumbani/property-dashboard/services"
	"github.com/nyumbani/property-dashboard/services/access"
	"github.com/nyumbani/property-dashboard/utils"
	"go.uber.org/zap"
)

const maxCheckBodyBytes = 4 << 10

// AccessService is the subset of the access service used by the handler
type AccessService interface {
	Check(ctx context.Context, req access.CheckRequest) (*access.Decision, error)
	Profile(role string) (rbac.RolePermissions, error)
	Catalog(category string) []rbac.Permission
	Roles() []access.RoleSummary
}

// AuditReader lists access audit entries
type AuditReader interface {
	List(ctx context.Context, role string, limit int) ([]*models.AccessAuditLog, error)
}

// AccessHandler serves the role, permission and access-check endpoints
type AccessHandler struct {
	service AccessService
	audit   AuditReader
	logger  *zap.Logger
}

// NewAccessHandler creates a new AccessHandler. audit may be nil when
// entries are only written to the log.
func NewAccessHandler(service AccessService, audit AuditReader, logger *zap.Logger) *AccessHandler {
	return &AccessHandler{
		service: service,
		audit:   audit,
		logger:  logger,
	}
}

// CheckAccessRequest is the body of POST /access/check
type CheckAccessRequest struct {
	Permission string `json:"permission" validate:"omitempty,max=64"`
	Menu       string `json:"menu" validate:"omitempty,max=32"`
	Feature    string `json:"feature" validate:"omitempty,max=32"`
}

// PermissionQuery holds the query parameters of GET /permissions. An unknown
// category is not an error and lists nothing.
type PermissionQuery struct {
	Category string `json:"category" validate:"omitempty,max=32"`
}

// AuditQuery holds the query parameters of GET /audit/access
type AuditQuery struct {
	Role  string `json:"role" validate:"omitempty,role"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=500"`
}

// ListRoles handles GET /api/v1/roles
func (h *AccessHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, h.service.Roles())
}

// GetRole handles GET /api/v1/roles/{role}
func (h *AccessHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Profile(chi.URLParam(r, "role"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, profile)
}

// ListPermissions handles GET /api/v1/permissions?category=
func (h *AccessHandler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	q := PermissionQuery{Category: r.URL.Query().Get("category")}
	if err := utils.ValidateStruct(&q); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, h.service.Catalog(q.Category))
}

// Me handles GET /api/v1/access/me
func (h *AccessHandler) Me(w http.ResponseWriter, r *http.Request) {
	role, ok := middleware.GetRoleFromContext(r.Context())
	if !ok {
		HandleServiceError(w, services.ErrInvalidRole, h.logger)
		return
	}

	profile, err := h.service.Profile(string(role))
	if err != nil {
		HandleServiceError(w, services.ErrInvalidRole, h.logger)
		return
	}
	_ = utils.WriteOK(w, profile)
}

// Check handles POST /api/v1/access/check
func (h *AccessHandler) Check(w http.ResponseWriter, r *http.Request) {
	var body CheckAccessRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCheckBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		HandleServiceError(w, services.NewDomainError(services.ErrorTypeValidation, "invalid request body", err), h.logger)
		return
	}
	if err := utils.ValidateStruct(&body); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	decision, err := h.service.Check(r.Context(), access.CheckRequest{
		Caller:     middleware.CallerFromRequest(r),
		Permission: body.Permission,
		Menu:       body.Menu,
		Feature:    body.Feature,
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, decision)
}

// ListAudit handles GET /api/v1/audit/access?role=&limit=
func (h *AccessHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		HandleServiceError(w, services.ErrAuditTrailDisabled, h.logger)
		return
	}

	q := AuditQuery{Role: r.URL.Query().Get("role"), Limit: 50}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			HandleServiceError(w, services.ErrInvalidInput.WithDetail("limit", raw), h.logger)
			return
		}
		q.Limit = limit
	}
	if err := utils.ValidateStruct(&q); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	role := q.Role
	if role != "" {
		parsed, _ := rbac.ParseRole(role)
		role = string(parsed)
	}

	entries, err := h.audit.List(r.Context(), role, q.Limit)
	if err != nil {
		HandleServiceError(w, services.WrapInternal("failed to list access audit entries", err), h.logger)
		return
	}
	_ = utils.WriteOK(w, entries)
}
