package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adiprasetyo045/diabetes-detector/internal/config"
)

// Layout is the on-disk shape of the service: datasets, model files, the
// audit log and rendered reports. It is built once from configuration and
// initialized explicitly at process start instead of folders appearing as
// a side effect of whoever touches them first.
type Layout struct {
	DataDir    string
	ModelsDir  string
	LogsDir    string
	ReportsDir string

	BundlePath   string
	MetadataPath string
	DatasetPath  string
	AuditCSVPath string
	SQLitePath   string
}

// NewLayout resolves the layout from configuration.
func NewLayout(cfg *config.Config) *Layout {
	dataDir := cfg.GetString("storage.data_dir")
	modelsDir := cfg.GetString("storage.models_dir")
	logsDir := cfg.GetString("storage.logs_dir")
	reportsDir := cfg.GetString("storage.reports_dir")

	return &Layout{
		DataDir:    dataDir,
		ModelsDir:  modelsDir,
		LogsDir:    logsDir,
		ReportsDir: reportsDir,

		BundlePath:   filepath.Join(modelsDir, cfg.GetString("model.bundle_file")),
		MetadataPath: filepath.Join(modelsDir, cfg.GetString("model.metadata_file")),
		DatasetPath:  filepath.Join(dataDir, cfg.GetString("training.dataset_file")),
		AuditCSVPath: filepath.Join(logsDir, cfg.GetString("audit.csv_file")),
		SQLitePath:   filepath.Join(logsDir, cfg.GetString("audit.sqlite_file")),
	}
}

// Ensure creates every directory of the layout. Idempotent; returns the
// first failure instead of swallowing it.
func (l *Layout) Ensure() error {
	for _, dir := range []string{l.DataDir, l.ModelsDir, l.LogsDir, l.ReportsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
