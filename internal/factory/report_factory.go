package factory

import (
	"go.uber.org/zap"

	"github.com/adiprasetyo045/diabetes-detector/internal/adapters/report"
	"github.com/adiprasetyo045/diabetes-detector/internal/core"
	"github.com/adiprasetyo045/diabetes-detector/internal/storage"
)

// ReportFactory creates the report renderer
type ReportFactory struct {
	layout *storage.Layout
	logger *zap.Logger
}

// NewReportFactory creates a new report factory
func NewReportFactory(layout *storage.Layout, logger *zap.Logger) *ReportFactory {
	return &ReportFactory{layout: layout, logger: logger}
}

// CreateRenderer creates the PDF renderer writing into the reports dir
func (f *ReportFactory) CreateRenderer() core.ReportRenderer {
	return report.NewPDFRenderer(f.layout.ReportsDir, f.logger)
}
