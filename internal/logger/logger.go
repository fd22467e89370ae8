// Package logger builds the zap loggers shared by the commands and services.
package logger

import (
	"fmt"

	"github.com/stitchdesk/crm/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a JSON production logger when format is "json" or the
// app runs in production, and a colored console logger otherwise.
// Unknown levels fall back to info.
func NewLogger(cfg *config.LoggingConfig, appCfg *config.AppConfig) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if cfg.Format == "json" || appCfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.InitialFields = map[string]interface{}{
		"app":         appCfg.Name,
		"environment": appCfg.Environment,
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s logger: %w", cfg.Format, err)
	}
	return log, nil
}

// WithJob tags entries with a background job name
func WithJob(logger *zap.Logger, name string) *zap.Logger {
	return logger.With(zap.String("job", name))
}

// WithClient tags entries with a client id
func WithClient(logger *zap.Logger, clientID string) *zap.Logger {
	return logger.With(zap.String("client_id", clientID))
}

// WithPurchaseOrder tags entries with a purchase order id
func WithPurchaseOrder(logger *zap.Logger, purchaseOrderID int) *zap.Logger {
	return logger.With(zap.Int("purchase_order_id", purchaseOrderID))
}
