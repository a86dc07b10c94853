package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/adiprasetyo045/diabetes-detector/internal/adapters/httpapi"
	"github.com/adiprasetyo045/diabetes-detector/internal/config"
	"github.com/adiprasetyo045/diabetes-detector/internal/core"
	"github.com/adiprasetyo045/diabetes-detector/internal/factory"
	"github.com/adiprasetyo045/diabetes-detector/internal/logging"
	"github.com/adiprasetyo045/diabetes-detector/internal/model"
	"github.com/adiprasetyo045/diabetes-detector/internal/storage"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register storage layout, initialized once here rather than as a
	// side effect of the first component that needs a folder
	if err := container.Provide(func(cfg *config.Config) (*storage.Layout, error) {
		layout := storage.NewLayout(cfg)
		if err := layout.Ensure(); err != nil {
			return nil, err
		}
		return layout, nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewAuditFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewModelFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewReportFactory); err != nil {
		return nil, err
	}

	// Register audit log
	if err := container.Provide(func(f *factory.AuditFactory) (core.AuditLog, error) {
		return f.CreateAuditLog()
	}); err != nil {
		return nil, err
	}

	// Register model registry and its interface views
	if err := container.Provide(func(f *factory.ModelFactory) *model.Registry {
		return f.CreateRegistry()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(r *model.Registry) core.ModelProvider {
		return r
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(r *model.Registry) httpapi.MetadataSource {
		return r
	}); err != nil {
		return nil, err
	}

	// Register report renderer
	if err := container.Provide(func(f *factory.ReportFactory) core.ReportRenderer {
		return f.CreateRenderer()
	}); err != nil {
		return nil, err
	}

	// Register preprocessor and prediction service
	if err := container.Provide(core.NewPreprocessor); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewPredictionService); err != nil {
		return nil, err
	}

	// Register HTTP handler and server
	if err := container.Provide(httpapi.NewHandler); err != nil {
		return nil, err
	}
	if err := container.Provide(func(
		cfg *config.Config,
		layout *storage.Layout,
		handler *httpapi.Handler,
		logger *zap.Logger,
	) *httpapi.Server {
		return httpapi.NewServer(cfg.GetString("server.listen_address"), layout.ReportsDir, handler, logger)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
