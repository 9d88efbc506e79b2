package observability

import (
	"context"
	"fmt"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nyumbani/property-dashboard/config"
)

// Field represents a structured log field.
type Field = zap.Field

// NewLogger builds a zap logger from the observability config.
// LogFormat "text" selects the human-readable development encoder.
func NewLogger(cfg config.ObservabilityConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	var zc zap.Config
	switch strings.ToLower(cfg.LogFormat) {
	case "text", "console":
		zc = zap.NewDevelopmentConfig()
	case "", "json":
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

// FromContext returns logger annotated with the request id stored by chi's RequestID middleware
func FromContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if id := chimw.GetReqID(ctx); id != "" {
		return logger.With(zap.String("request_id", id))
	}
	return logger
}
