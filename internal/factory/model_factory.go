package factory

import (
	"go.uber.org/zap"

	"github.com/adiprasetyo045/diabetes-detector/internal/model"
	"github.com/adiprasetyo045/diabetes-detector/internal/storage"
)

// ModelFactory creates the model registry from the storage layout
type ModelFactory struct {
	layout *storage.Layout
	logger *zap.Logger
}

// NewModelFactory creates a new model factory
func NewModelFactory(layout *storage.Layout, logger *zap.Logger) *ModelFactory {
	return &ModelFactory{layout: layout, logger: logger}
}

// CreateRegistry builds the registry and attempts an eager first load. A
// missing bundle is not fatal at startup; the service retries on demand
// and answers "not ready" until a load succeeds.
func (f *ModelFactory) CreateRegistry() *model.Registry {
	registry := model.NewRegistry(f.layout.BundlePath, f.layout.MetadataPath, f.logger)
	if err := registry.Load(); err != nil {
		f.logger.Warn("Model bundle not loaded at startup", zap.Error(err))
	}
	return registry
}
