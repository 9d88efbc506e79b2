package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/nyumbani/property-dashboard/config"
	"go.uber.org/zap"
)

// DB wraps the sql.DB connection pool
type DB struct {
	*sql.DB
	logger *zap.Logger
}

// NewDB creates a new database connection pool
func NewDB(cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		zap.String("connection", cfg.LogString()))

	return Wrap(db, logger), nil
}

// Wrap adapts an already opened pool
func Wrap(db *sql.DB, logger *zap.Logger) *DB {
	return &DB{DB: db, logger: logger}
}

// Close closes the database connection pool
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query check failed: %w", err)
	}

	return nil
}

const accessAuditSchema = `
	CREATE TABLE IF NOT EXISTS access_audit_logs (
		id UUID PRIMARY KEY,
		role VARCHAR(50) NOT NULL,
		subject VARCHAR(255) NOT NULL DEFAULT '',
		action VARCHAR(50) NOT NULL,
		resource_type VARCHAR(20) NOT NULL,
		resource VARCHAR(100) NOT NULL,
		allowed BOOLEAN NOT NULL,
		request_id VARCHAR(255),
		ip_address VARCHAR(45),
		user_agent TEXT,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_access_audit_logs_role ON access_audit_logs(role);
	CREATE INDEX IF NOT EXISTS idx_access_audit_logs_timestamp ON access_audit_logs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_access_audit_logs_request_id ON access_audit_logs(request_id);
`

// InitSchema creates the access audit table and its indexes
func (db *DB) InitSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, accessAuditSchema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	db.logger.Info("access audit schema initialized")
	return nil
}
