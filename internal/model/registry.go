package model

import (
	"sync"

	"go.uber.org/zap"

	"github.com/adiprasetyo045/diabetes-detector/internal/core"
)

// Registry is the single-writer, many-reader holder of the loaded model
// bundle and its metadata. Reads take the shared lock only long enough to
// copy the pointer; reloads are idempotent and racing reloads resolve to
// the last successful load.
type Registry struct {
	bundlePath string
	metaPath   string
	logger     *zap.Logger

	mu     sync.RWMutex
	bundle *Bundle
	meta   map[string]any
}

// NewRegistry creates a registry for the given bundle and metadata paths.
// It does not load anything; call Load (or let the service trigger a
// reload on first use).
func NewRegistry(bundlePath, metaPath string, logger *zap.Logger) *Registry {
	return &Registry{
		bundlePath: bundlePath,
		metaPath:   metaPath,
		logger:     logger,
	}
}

// Load reads the bundle and metadata from disk and swaps them in. A
// missing or incompatible bundle leaves the previously loaded one (if
// any) in place. Metadata failures are reported but never block serving.
func (r *Registry) Load() error {
	bundle, err := LoadBundle(r.bundlePath)
	if err != nil {
		return err
	}

	meta, err := LoadMetadataRaw(r.metaPath)
	if err != nil {
		r.logger.Warn("Model metadata unavailable", zap.Error(err))
		meta = map[string]any{}
	}

	r.mu.Lock()
	r.bundle = bundle
	r.meta = meta
	r.mu.Unlock()

	r.logger.Info("Model bundle loaded",
		zap.String("path", r.bundlePath),
		zap.Time("trained_at", bundle.Timestamp))
	return nil
}

// Reload satisfies core.ModelProvider.
func (r *Registry) Reload() error {
	return r.Load()
}

// Get returns the active classifier, or false when none is loaded.
func (r *Registry) Get() (core.Classifier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.bundle == nil {
		return nil, false
	}
	return r.bundle.Model, true
}

// Bundle returns the full loaded bundle for callers that need the schema
// snapshot or class names.
func (r *Registry) Bundle() (*Bundle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.bundle == nil {
		return nil, false
	}
	return r.bundle, true
}

// Metadata returns the metadata document of the loaded model, or an empty
// document when nothing is loaded.
func (r *Registry) Metadata() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.meta == nil {
		return map[string]any{}
	}
	return r.meta
}
