// Package access evaluates dashboard access checks against the role tables
// and feeds the outcomes to the access audit trail.
package access

import (
	"context"

	"github.com/nyumbani/property-dashboard/internal/observability"
	"github.com/nyumbani/property-dashboard/models"
	"github.com/nyumbani/property-dashboard/rbac"
	"github.com/nyumbani/property-dashboard/services"
	"go.uber.org/zap"
)

// AuditRecorder receives one entry per evaluated check
type AuditRecorder interface {
	Record(log *models.AccessAuditLog) error
}

// Caller identifies who is asking. Role is kept as presented so that
// unknown roles show up in the audit trail.
type Caller struct {
	Role      string
	Subject   string
	RequestID string
	IPAddress string
	UserAgent string
}

// CheckRequest asks for any combination of a permission, a menu section and
// a data-access flag. Empty fields are not checked.
type CheckRequest struct {
	Caller     Caller
	Permission string
	Menu       string
	Feature    string
}

// CheckResult is the outcome of one check. Name is the catalog display name
// of a known permission.
type CheckResult struct {
	Type    models.ResourceType `json:"type"`
	ID      string              `json:"id"`
	Name    string              `json:"name,omitempty"`
	Allowed bool                `json:"allowed"`
}

// Decision aggregates the results. Allowed is true only if every check passed.
type Decision struct {
	Role    string        `json:"role"`
	Allowed bool          `json:"allowed"`
	Checks  []CheckResult `json:"checks"`
}

// RoleSummary is the short description of a role
type RoleSummary struct {
	Role        rbac.Role `json:"role"`
	DisplayName string    `json:"displayName"`
	Description string    `json:"description"`
}

// Options configures a Service
type Options struct {
	// RecordAllowed also sends granted checks to the recorder
	RecordAllowed bool
}

// Service answers access questions for the API
type Service struct {
	table    *rbac.Table
	recorder AuditRecorder
	logger   *zap.Logger
	opts     Options
}

// NewService creates a Service. recorder may be nil.
func NewService(table *rbac.Table, recorder AuditRecorder, logger *zap.Logger, opts Options) *Service {
	if table == nil {
		table = rbac.Default()
	}
	return &Service{
		table:    table,
		recorder: recorder,
		logger:   logger,
		opts:     opts,
	}
}

// Check evaluates the request for the caller's role. An unknown role is
// not an error; every check simply fails.
func (s *Service) Check(ctx context.Context, req CheckRequest) (*Decision, error) {
	if req.Permission == "" && req.Menu == "" && req.Feature == "" {
		return nil, services.ErrEmptyCheck
	}

	role := rbac.Role(req.Caller.Role)
	decision := &Decision{Role: req.Caller.Role, Allowed: true}

	if req.Permission != "" {
		s.add(ctx, decision, req.Caller, models.ResourceTypePermission, req.Permission,
			s.table.HasPermission(role, req.Permission))
	}
	if req.Menu != "" {
		s.add(ctx, decision, req.Caller, models.ResourceTypeMenu, req.Menu,
			s.table.HasMenuAccess(role, req.Menu))
	}
	if req.Feature != "" {
		s.add(ctx, decision, req.Caller, models.ResourceTypeFeature, req.Feature,
			s.table.CanAccessFeature(role, rbac.Feature(req.Feature)))
	}

	return decision, nil
}

func (s *Service) add(ctx context.Context, d *Decision, caller Caller, typ models.ResourceType, id string, allowed bool) {
	result := CheckResult{Type: typ, ID: id, Allowed: allowed}
	if typ == models.ResourceTypePermission {
		if p, ok := s.table.Lookup(id); ok {
			result.Name = p.Name
		}
	}
	d.Checks = append(d.Checks, result)
	if !allowed {
		d.Allowed = false
	}

	observability.FromContext(ctx, s.logger).Debug("access check",
		zap.String("role", caller.Role),
		zap.String("resource_type", string(typ)),
		zap.String("resource", id),
		zap.Bool("allowed", allowed))

	if s.recorder == nil || (allowed && !s.opts.RecordAllowed) {
		return
	}
	entry := models.NewAccessAuditLog(caller.Role, caller.Subject, typ, id, allowed).
		WithRequest(caller.RequestID, caller.IPAddress, caller.UserAgent)
	if err := s.recorder.Record(entry); err != nil {
		s.logger.Warn("failed to record access audit entry", zap.Error(err))
	}
}

// Profile returns the full profile for the named role
func (s *Service) Profile(role string) (rbac.RolePermissions, error) {
	r, err := rbac.ParseRole(role)
	if err != nil {
		return rbac.RolePermissions{}, services.NewDomainError(services.ErrorTypeNotFound, "role not found", err).
			WithDetail("role", role)
	}
	return s.table.GetRolePermissions(r)
}

// Catalog returns the permission catalog, restricted to category when set.
// An unknown category yields an empty list.
func (s *Service) Catalog(category string) []rbac.Permission {
	if category == "" {
		return s.table.Catalog()
	}
	return s.table.GetPermissionsByCategory(rbac.Category(category))
}

// Roles lists every role with its display name
func (s *Service) Roles() []RoleSummary {
	roles := rbac.Roles()
	out := make([]RoleSummary, 0, len(roles))
	for _, r := range roles {
		p, err := s.table.GetRolePermissions(r)
		if err != nil {
			continue
		}
		out = append(out, RoleSummary{Role: r, DisplayName: p.DisplayName, Description: p.Description})
	}
	return out
}
