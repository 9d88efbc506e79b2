package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/nyumbani/property-dashboard/rbac"
	"github.com/nyumbani/property-dashboard/services/audit"
	"github.com/nyumbani/property-dashboard/utils"
	"go.uber.org/zap"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
	Audit     *audit.Stats      `json:"audit,omitempty"`
}

// AuditStatsProvider reports the state of the audit worker pool
type AuditStatsProvider interface {
	GetStats() audit.Stats
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	db     *sql.DB
	audit  AuditStatsProvider
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. db and auditStats may be nil
// when the audit trail is kept in the log only.
func NewHealthHandler(db *sql.DB, auditStats AuditStatsProvider, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		audit:  auditStats,
		logger: logger,
	}
}

// HandleHealth handles GET /healthz
// Basic liveness check - always returns 200 if service is running
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	_ = utils.WriteOK(w, response)
}

// HandleReadiness handles GET /readyz
// Readiness check - validates the permission tables, the audit database and
// the audit workers
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	allHealthy := true

	if err := rbac.Validate(); err != nil {
		h.logger.Error("permission tables are inconsistent", zap.Error(err))
		checks["permission_tables"] = "unhealthy"
		allHealthy = false
	} else {
		checks["permission_tables"] = "healthy"
	}

	switch {
	case h.db == nil:
		checks["database"] = "disabled"
	case h.checkDatabase(ctx) != nil:
		checks["database"] = "unhealthy"
		allHealthy = false
	default:
		checks["database"] = "healthy"
	}

	var auditStats *audit.Stats
	if h.audit == nil {
		checks["audit_workers"] = "disabled"
	} else {
		stats := h.audit.GetStats()
		auditStats = &stats
		if stats.Started {
			checks["audit_workers"] = "healthy"
		} else {
			checks["audit_workers"] = "unhealthy"
			allHealthy = false
		}
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Audit:     auditStats,
	}

	if err := utils.WriteJSON(w, httpStatus, utils.SuccessResponse{Data: response}); err != nil {
		h.logger.Error("failed to write readiness response", zap.Error(err))
	}
}

func (h *HealthHandler) checkDatabase(ctx context.Context) error {
	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("database health check failed", zap.Error(err))
		return err
	}

	var result int
	if err := h.db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		h.logger.Warn("database health check failed", zap.Error(err))
		return err
	}

	return nil
}
