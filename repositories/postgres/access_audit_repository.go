package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nyumbani/property-dashboard/models"
	"github.com/nyumbani/property-dashboard/repositories"
	"go.uber.org/zap"
)

const maxListLimit = 500

// AccessAuditRepository implements the repositories.AccessAuditRepository interface
type AccessAuditRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewAccessAuditRepository creates a new access audit repository
func NewAccessAuditRepository(db *DB, logger *zap.Logger) repositories.AccessAuditRepository {
	return &AccessAuditRepository{
		db:     db,
		logger: logger,
	}
}

// Insert inserts a new audit entry
func (r *AccessAuditRepository) Insert(ctx context.Context, log *models.AccessAuditLog) error {
	query := `
		INSERT INTO access_audit_logs (
			id, role, subject, action, resource_type, resource, allowed,
			request_id, ip_address, user_agent, timestamp
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.Role,
		log.Subject,
		log.Action,
		log.ResourceType,
		log.Resource,
		log.Allowed,
		log.RequestID,
		log.IPAddress,
		log.UserAgent,
		log.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert access audit log: %w", err)
	}

	r.logger.Debug("access audit log inserted",
		zap.String("id", log.ID.String()),
		zap.String("action", string(log.Action)))
	return nil
}

// ListRecent retrieves the newest entries
func (r *AccessAuditRepository) ListRecent(ctx context.Context, limit int) ([]*models.AccessAuditLog, error) {
	query := `
		SELECT id, role, subject, action, resource_type, resource, allowed,
		       request_id, ip_address, user_agent, timestamp
		FROM access_audit_logs
		ORDER BY timestamp DESC
		LIMIT $1
	`

	return r.query(ctx, query, clampLimit(limit))
}

// ListByRole retrieves the newest entries for a role
func (r *AccessAuditRepository) ListByRole(ctx context.Context, role string, limit int) ([]*models.AccessAuditLog, error) {
	query := `
		SELECT id, role, subject, action, resource_type, resource, allowed,
		       request_id, ip_address, user_agent, timestamp
		FROM access_audit_logs
		WHERE role = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	return r.query(ctx, query, role, clampLimit(limit))
}

func (r *AccessAuditRepository) query(ctx context.Context, query string, args ...interface{}) ([]*models.AccessAuditLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query access audit logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*models.AccessAuditLog, 0)
	for rows.Next() {
		log := &models.AccessAuditLog{}
		var requestID, ip, userAgent sql.NullString
		if err := rows.Scan(
			&log.ID,
			&log.Role,
			&log.Subject,
			&log.Action,
			&log.ResourceType,
			&log.Resource,
			&log.Allowed,
			&requestID,
			&ip,
			&userAgent,
			&log.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan access audit log: %w", err)
		}
		log.RequestID = requestID.String
		log.IPAddress = ip.String
		log.UserAgent = userAgent.String
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating access audit logs: %w", err)
	}

	return logs, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
