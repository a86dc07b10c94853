package training

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adiprasetyo045/diabetes-detector/internal/core"
	"github.com/adiprasetyo045/diabetes-detector/internal/model"
)

func syntheticTrainingSet(t *testing.T, n int) *Dataset {
	t.Helper()
	x, y := syntheticDataset(n, 7)
	return &Dataset{X: x, Y: y}
}

func TestTrainProducesWorkingBundle(t *testing.T) {
	ds := syntheticTrainingSet(t, 200)

	trainer := NewTrainer(TreeConfig{MaxDepth: 4, MinSamplesLeaf: 5, MinSamplesSplit: 10}, 42, zap.NewNop())
	bundle, meta, err := trainer.Train(ds)
	require.NoError(t, err)

	assert.Equal(t, core.Features(), bundle.Features)
	assert.Equal(t, []string{core.LabelNegative, core.LabelPositive}, bundle.TargetNames)

	correct := 0
	for i, row := range ds.X {
		if bundle.Model.Predict(row) == ds.Y[i] {
			correct++
		}
	}
	assert.Greater(t, float64(correct)/float64(len(ds.X)), 0.95)

	assert.Equal(t, "Calibrated Decision Tree (Entropy)", meta.Algorithm)
	assert.Greater(t, meta.AccuracyCV, 0.9)
	assert.Greater(t, meta.Metrics["roc_auc"], 0.95)
	assert.Contains(t, meta.TopFeatures, "glucose")
}

func TestTrainCalibrationSpreadsProbabilities(t *testing.T) {
	ds := syntheticTrainingSet(t, 200)

	trainer := NewTrainer(TreeConfig{MaxDepth: 4, MinSamplesLeaf: 5, MinSamplesSplit: 10}, 42, zap.NewNop())
	bundle, _, err := trainer.Train(ds)
	require.NoError(t, err)

	var posMean, negMean float64
	var posN, negN int
	for i, row := range ds.X {
		p := bundle.Model.PredictProba(row)[1]
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		if ds.Y[i] == 1 {
			posMean += p
			posN++
		} else {
			negMean += p
			negN++
		}
	}
	assert.Greater(t, posMean/float64(posN), negMean/float64(negN))
}

func TestTrainedBundleRoundTripsThroughRegistry(t *testing.T) {
	ds := syntheticTrainingSet(t, 200)

	trainer := NewTrainer(TreeConfig{MaxDepth: 4, MinSamplesLeaf: 5, MinSamplesSplit: 10}, 42, zap.NewNop())
	bundle, meta, err := trainer.Train(ds)
	require.NoError(t, err)

	dir := t.TempDir()
	bundlePath := filepath.Join(dir, "bundle.json")
	metaPath := filepath.Join(dir, "meta.json")
	require.NoError(t, model.SaveBundle(bundlePath, bundle))
	require.NoError(t, model.SaveMetadata(metaPath, meta))

	registry := model.NewRegistry(bundlePath, metaPath, zap.NewNop())
	require.NoError(t, registry.Load())

	classifier, ok := registry.Get()
	require.True(t, ok)
	assert.Equal(t, 1, classifier.Predict(ds.X[0]))

	info := registry.Metadata()
	assert.Equal(t, "Calibrated Decision Tree (Entropy)", info["algorithm"])
}

func TestTrainRejectsTinyDataset(t *testing.T) {
	ds := syntheticTrainingSet(t, 6)

	trainer := NewTrainer(DefaultTreeConfig(), 42, zap.NewNop())
	_, _, err := trainer.Train(ds)
	require.Error(t, err)
}

func TestTrainDeterministicForSeed(t *testing.T) {
	first, _, err := NewTrainer(TreeConfig{MaxDepth: 4, MinSamplesLeaf: 5, MinSamplesSplit: 10}, 42, zap.NewNop()).
		Train(syntheticTrainingSet(t, 100))
	require.NoError(t, err)
	second, _, err := NewTrainer(TreeConfig{MaxDepth: 4, MinSamplesLeaf: 5, MinSamplesSplit: 10}, 42, zap.NewNop()).
		Train(syntheticTrainingSet(t, 100))
	require.NoError(t, err)

	assert.Equal(t, first.Model.Calibration, second.Model.Calibration)
	assert.Equal(t, first.Model.Tree.Nodes, second.Model.Tree.Nodes)
}

func TestStratifiedFoldsCoverEveryIndexOnce(t *testing.T) {
	y := make([]int, 53)
	for i := range y {
		y[i] = i % 2
	}

	folds := stratifiedFolds(y, 5, 42)
	require.Len(t, folds, 5)

	seen := map[int]int{}
	for _, fold := range folds {
		for _, idx := range fold {
			seen[idx]++
		}
	}
	require.Len(t, seen, len(y))
	for idx, n := range seen {
		assert.Equal(t, 1, n, "index %d", idx)
	}
}

func TestStratifiedFoldsKeepClassBalance(t *testing.T) {
	y := make([]int, 100)
	for i := range y {
		if i < 50 {
			y[i] = 1
		}
	}

	folds := stratifiedFolds(y, 5, 1)
	for _, fold := range folds {
		positives := 0
		for _, idx := range fold {
			positives += y[idx]
		}
		assert.Equal(t, 10, positives)
	}
}
