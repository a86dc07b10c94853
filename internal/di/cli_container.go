package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/adiprasetyo045/diabetes-detector/internal/config"
	"github.com/adiprasetyo045/diabetes-detector/internal/core"
	"github.com/adiprasetyo045/diabetes-detector/internal/factory"
	"github.com/adiprasetyo045/diabetes-detector/internal/logging"
	"github.com/adiprasetyo045/diabetes-detector/internal/model"
	"github.com/adiprasetyo045/diabetes-detector/internal/storage"
)

// BuildCLIContainer creates a slimmer container for the one-shot
// commands: console logging, no HTTP server.
func BuildCLIContainer(verbose bool) (*dig.Container, error) {
	container := dig.New()

	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	if err := container.Provide(func() (*zap.Logger, error) {
		return logging.InitConsoleLogger(verbose)
	}); err != nil {
		return nil, err
	}

	if err := container.Provide(func(cfg *config.Config) (*storage.Layout, error) {
		layout := storage.NewLayout(cfg)
		if err := layout.Ensure(); err != nil {
			return nil, err
		}
		return layout, nil
	}); err != nil {
		return nil, err
	}

	if err := container.Provide(factory.NewAuditFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewModelFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.AuditFactory) (core.AuditLog, error) {
		return f.CreateAuditLog()
	}); err != nil {
		return nil, err
	}
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

	if err := container.Provide(core.NewPreprocessor); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewPredictionService); err != nil {
		return nil, err
	}

	return container, nil
}
