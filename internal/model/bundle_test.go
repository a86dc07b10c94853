package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiprasetyo045/diabetes-detector/internal/core"
)

func testBundle() *Bundle {
	nodes := []TreeNode{
		{Feature: 5, Threshold: 7.5, Left: 1, Right: 2, Value: []float64{10, 10}},
		{Feature: -1, Value: []float64{10, 0}},
		{Feature: -1, Value: []float64{0, 10}},
	}
	mean := make([]float64, core.FeatureCount())
	scale := make([]float64, core.FeatureCount())
	for i := range scale {
		scale[i] = 1
	}
	return &Bundle{
		Model: &CalibratedPipeline{
			Scaler:      &StandardScaler{Mean: mean, Scale: scale},
			Tree:        &DecisionTree{Nodes: nodes, NumFeatures: core.FeatureCount()},
			Calibration: &SigmoidCalibration{A: -6, B: 3},
		},
		Features:    core.Features(),
		TargetNames: []string{core.LabelNegative, core.LabelPositive},
		Timestamp:   time.Now().Truncate(time.Second),
	}
}

func TestBundleSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.json")

	require.NoError(t, SaveBundle(path, testBundle()))

	loaded, err := LoadBundle(path)
	require.NoError(t, err)

	assert.Equal(t, core.Features(), loaded.Features)
	assert.Equal(t, []string{core.LabelNegative, core.LabelPositive}, loaded.TargetNames)

	vector := make([]float64, core.FeatureCount())
	vector[5] = 10 // above the split threshold
	assert.Equal(t, 1, loaded.Model.Predict(vector))
}

func TestLoadBundleMissingFile(t *testing.T) {
	_, err := LoadBundle(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadBundleRejectsSchemaMismatch(t *testing.T) {
	bundle := testBundle()
	bundle.Features[0], bundle.Features[1] = bundle.Features[1], bundle.Features[0]

	path := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, SaveBundle(path, bundle))

	_, err := LoadBundle(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incompatible")
}

func TestLoadBundleRejectsShortSchema(t *testing.T) {
	bundle := testBundle()
	bundle.Features = bundle.Features[:5]

	path := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, SaveBundle(path, bundle))

	_, err := LoadBundle(path)
	require.Error(t, err)
}

func TestLoadBundleRejectsMissingClassifier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.json")
	data, err := json.Marshal(map[string]any{"features": core.Features()})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = LoadBundle(path)
	require.Error(t, err)
}
