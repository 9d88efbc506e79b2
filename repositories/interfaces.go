package repositories

import (
	"context"

	"github.com/nyumbani/property-dashboard/models"
)

// AccessAuditRepository handles access audit trail data operations
type AccessAuditRepository interface {
	// Insert inserts a new audit entry
	Insert(ctx context.Context, log *models.AccessAuditLog) error

	// ListRecent retrieves the newest entries, newest first
	ListRecent(ctx context.Context, limit int) ([]*models.AccessAuditLog, error)

	// ListByRole retrieves the newest entries recorded for a role, newest first
	ListByRole(ctx context.Context, role string, limit int) ([]*models.AccessAuditLog, error)
}
