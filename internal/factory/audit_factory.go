package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/adiprasetyo045/diabetes-detector/internal/adapters/audit"
	"github.com/adiprasetyo045/diabetes-detector/internal/config"
	"github.com/adiprasetyo045/diabetes-detector/internal/core"
	"github.com/adiprasetyo045/diabetes-detector/internal/storage"
)

// AuditFactory creates audit log backends based on configuration
type AuditFactory struct {
	cfg    *config.Config
	layout *storage.Layout
	logger *zap.Logger
}

// NewAuditFactory creates a new audit factory
func NewAuditFactory(cfg *config.Config, layout *storage.Layout, logger *zap.Logger) *AuditFactory {
	return &AuditFactory{
		cfg:    cfg,
		layout: layout,
		logger: logger,
	}
}

// CreateAuditLog creates an audit log backend based on the configuration
func (f *AuditFactory) CreateAuditLog() (core.AuditLog, error) {
	backend := f.cfg.GetString("audit.backend")

	switch backend {
	case "csv":
		return audit.NewCSVAudit(f.layout.AuditCSVPath, f.logger), nil
	case "sqlite":
		return audit.NewSQLiteAudit(f.layout.SQLitePath, f.logger)
	case "mysql":
		return audit.NewMySQLAudit(f.cfg.GetString("audit.mysql_dsn"), f.logger)
	case "memory":
		return audit.NewMemoryAudit(), nil
	default:
		return nil, fmt.Errorf("unsupported audit backend: %s", backend)
	}
}
