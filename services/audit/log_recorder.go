package audit

import (
	"github.com/nyumbani/property-dashboard/models"
	"go.uber.org/zap"
)

// LogRecorder writes audit entries to the structured log. Used when no
// database is configured.
type LogRecorder struct {
	logger *zap.Logger
}

// NewLogRecorder creates a LogRecorder writing under the "access_audit" logger name
func NewLogRecorder(logger *zap.Logger) *LogRecorder {
	return &LogRecorder{logger: logger.Named("access_audit")}
}

// Record logs the entry. Denials are logged at warn level.
func (r *LogRecorder) Record(log *models.AccessAuditLog) error {
	fields := []zap.Field{
		zap.String("id", log.ID.String()),
		zap.String("role", log.Role),
		zap.String("subject", log.Subject),
		zap.String("resource_type", string(log.ResourceType)),
		zap.String("resource", log.Resource),
		zap.Bool("allowed", log.Allowed),
		zap.String("request_id", log.RequestID),
		zap.String("ip_address", log.IPAddress),
	}
	if log.Allowed {
		r.logger.Info(string(log.Action), fields...)
	} else {
		r.logger.Warn(string(log.Action), fields...)
	}
	return nil
}
