package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegistryEmptyUntilLoaded(t *testing.T) {
	dir := t.TempDir()
	registry := NewRegistry(filepath.Join(dir, "bundle.json"), filepath.Join(dir, "meta.json"), zap.NewNop())

	_, ok := registry.Get()
	assert.False(t, ok)
	assert.Empty(t, registry.Metadata())
	require.Error(t, registry.Load())
}

func TestRegistryLoadAndGet(t *testing.T) {
	dir := t.TempDir()
	bundlePath := filepath.Join(dir, "bundle.json")
	metaPath := filepath.Join(dir, "meta.json")

	require.NoError(t, SaveBundle(bundlePath, testBundle()))
	require.NoError(t, SaveMetadata(metaPath, &Metadata{
		Algorithm: "Calibrated Decision Tree (Entropy)",
		Metrics:   map[string]float64{"accuracy": 0.9},
	}))

	registry := NewRegistry(bundlePath, metaPath, zap.NewNop())
	require.NoError(t, registry.Load())

	classifier, ok := registry.Get()
	require.True(t, ok)
	assert.NotNil(t, classifier)

	meta := registry.Metadata()
	assert.Equal(t, "Calibrated Decision Tree (Entropy)", meta["algorithm"])
}

func TestRegistryLoadWithoutMetadataStillServes(t *testing.T) {
	dir := t.TempDir()
	bundlePath := filepath.Join(dir, "bundle.json")

	require.NoError(t, SaveBundle(bundlePath, testBundle()))

	registry := NewRegistry(bundlePath, filepath.Join(dir, "missing.json"), zap.NewNop())
	require.NoError(t, registry.Load())

	_, ok := registry.Get()
	assert.True(t, ok)
	assert.Empty(t, registry.Metadata())
}

func TestRegistryFailedReloadKeepsPreviousBundle(t *testing.T) {
	dir := t.TempDir()
	bundlePath := filepath.Join(dir, "bundle.json")
	metaPath := filepath.Join(dir, "meta.json")

	require.NoError(t, SaveBundle(bundlePath, testBundle()))
	registry := NewRegistry(bundlePath, metaPath, zap.NewNop())
	require.NoError(t, registry.Load())

	// Break the backing file; the already-loaded bundle must survive a
	// failed reload.
	require.NoError(t, os.Remove(bundlePath))
	require.Error(t, registry.Reload())

	_, ok := registry.Get()
	assert.True(t, ok)
}
