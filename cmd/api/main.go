package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/nyumbani/property-dashboard/app"
	"github.com/nyumbani/property-dashboard/config"
	"github.com/nyumbani/property-dashboard/internal/observability"
	"github.com/nyumbani/property-dashboard/rbac"
	"github.com/nyumbani/property-dashboard/routes"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "api: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Observability)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Refuse to serve with inconsistent permission tables
	if err := rbac.Validate(); err != nil {
		logger.Error("permission tables failed validation", zap.Error(err))
		return err
	}

	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if err := deps.Start(); err != nil {
		_ = deps.Close(context.Background())
		return err
	}

	ln, err := net.Listen("tcp", cfg.Server.Address())
	if err != nil {
		_ = deps.Close(context.Background())
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.Address(), err)
	}

	logger.Info("api listening",
		zap.String("address", ln.Addr().String()),
		zap.String("environment", cfg.Environment))

	return serve(ctx, newServer(cfg, routes.SetupRoutes(deps)), ln, deps, logger)
}

func newServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       2 * cfg.Server.WriteTimeout,
	}
}

// serve runs srv until ctx is cancelled, then drains in-flight requests and
// closes deps within the configured shutdown timeout
func serve(ctx context.Context, srv *http.Server, ln net.Listener, deps *app.Dependencies, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", zap.Error(serveErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), deps.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if err := deps.Close(shutdownCtx); err != nil {
		logger.Error("dependency shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped")
	return serveErr
}
