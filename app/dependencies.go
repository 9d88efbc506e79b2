package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nyumbani/property-dashboard/config"
	"github.com/nyumbani/property-dashboard/handlers"
	"github.com/nyumbani/property-dashboard/middleware"
	"github.com/nyumbani/property-dashboard/rbac"
	"github.com/nyumbani/property-dashboard/repositories"
	"github.com/nyumbani/property-dashboard/repositories/postgres"
	"github.com/nyumbani/property-dashboard/services/access"
	"github.com/nyumbani/property-dashboard/services/audit"
	"github.com/nyumbani/property-dashboard/tokens"
	"go.uber.org/zap"
)

// devSigningSecret is never used in production; see SigningSecret
const devSigningSecret = "property-dashboard-dev-secret"

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB // nil when no database is configured
	Logger *zap.Logger

	// Access audit trail
	AccessAudit  repositories.AccessAuditRepository
	AuditService *audit.AuditService // nil when no database is configured
	Recorder     audit.Recorder

	// Access control
	Permissions *rbac.Table
	Access      *access.Service

	// Session tokens
	TokenIssuer    *tokens.Issuer
	TokenValidator *tokens.Validator

	// HTTP
	AuthMiddleware   *middleware.AuthMiddleware
	AccessMiddleware *middleware.AccessMiddleware
	AccessHandler    *handlers.AccessHandler
	HealthHandler    *handlers.HealthHandler

	started bool
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:      cfg,
		Logger:      logger,
		Permissions: rbac.Default(),
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.initAudit(cfg)

	if err := deps.initTokens(cfg); err != nil {
		_ = deps.closeDB()
		return nil, fmt.Errorf("failed to initialize tokens: %w", err)
	}

	deps.initHTTP(cfg)

	logger.Info("all dependencies initialized successfully",
		zap.Bool("audit_trail_persisted", deps.AuditService != nil))
	return deps, nil
}

// initDatabase opens the audit database when one is configured
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	if !cfg.Database.Enabled() {
		d.Logger.Warn("database not configured, access audit trail kept in logs only")
		return nil
	}

	db, err := postgres.NewDB(cfg.Database, d.Logger)
	if err != nil {
		return err
	}

	if err := db.InitSchema(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize audit schema: %w", err)
	}

	d.DB = db
	return nil
}

// initAudit picks the access audit sink: the Postgres worker pool when a
// database is available, the structured log otherwise
func (d *Dependencies) initAudit(cfg *config.Config) {
	if d.DB == nil {
		d.Recorder = audit.NewLogRecorder(d.Logger)
		return
	}

	d.AccessAudit = postgres.NewAccessAuditRepository(d.DB, d.Logger)
	d.AuditService = audit.NewAuditService(d.AccessAudit, d.Logger, audit.Config{
		BufferSize:  cfg.Audit.BufferSize,
		WorkerCount: cfg.Audit.WorkerCount,
	})
	d.Recorder = d.AuditService
}

// SigningSecret returns the session token key for cfg. Outside production an
// unset AUTH_JWT_SECRET falls back to a fixed development secret.
func SigningSecret(cfg *config.Config) (string, error) {
	if cfg.Auth.JWTSecret != "" {
		return cfg.Auth.JWTSecret, nil
	}
	if cfg.IsProduction() {
		return "", tokens.ErrMissingSecret
	}
	return devSigningSecret, nil
}

func (d *Dependencies) initTokens(cfg *config.Config) error {
	secret, err := SigningSecret(cfg)
	if err != nil {
		return err
	}
	if cfg.Auth.JWTSecret == "" {
		d.Logger.Warn("AUTH_JWT_SECRET not set, using development signing secret")
	}

	tokenCfg := tokens.Config{
		Secret: []byte(secret),
		Issuer: cfg.Auth.Issuer,
		TTL:    cfg.Auth.TokenTTL,
	}

	validator, err := tokens.NewValidator(tokenCfg)
	if err != nil {
		return err
	}
	issuer, err := tokens.NewIssuer(tokenCfg)
	if err != nil {
		return err
	}

	d.TokenValidator = validator
	d.TokenIssuer = issuer
	return nil
}

func (d *Dependencies) initHTTP(cfg *config.Config) {
	d.Access = access.NewService(d.Permissions, d.Recorder, d.Logger, access.Options{
		RecordAllowed: cfg.Audit.RecordAllowed,
	})

	d.AuthMiddleware = middleware.NewAuthMiddleware(d.TokenValidator, d.Logger)
	d.AccessMiddleware = middleware.NewAccessMiddleware(d.Access, d.Logger)

	// A nil reader makes the audit listing answer 404
	var reader handlers.AuditReader
	var stats handlers.AuditStatsProvider
	if d.AuditService != nil {
		reader = d.AuditService
		stats = d.AuditService
	}
	d.AccessHandler = handlers.NewAccessHandler(d.Access, reader, d.Logger)

	var sqlDB *sql.DB
	if d.DB != nil {
		sqlDB = d.DB.DB
	}
	d.HealthHandler = handlers.NewHealthHandler(sqlDB, stats, d.Logger)
}

// Start launches background workers
func (d *Dependencies) Start() error {
	if d.AuditService == nil {
		return nil
	}
	if err := d.AuditService.Start(); err != nil {
		return fmt.Errorf("failed to start audit service: %w", err)
	}
	d.started = true
	return nil
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	// Drain the audit queue before the pool goes away
	if d.AuditService != nil && d.started {
		d.started = false
		timeout := 5 * time.Second
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		if err := d.AuditService.Stop(timeout); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop audit service: %w", err))
		}
	}

	if err := d.closeDB(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database: %w", err))
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}

func (d *Dependencies) closeDB() error {
	if d.DB == nil {
		return nil
	}
	err := d.DB.Close()
	d.DB = nil
	return err
}
