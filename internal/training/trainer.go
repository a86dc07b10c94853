package training

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/adiprasetyo045/diabetes-detector/internal/core"
	"github.com/adiprasetyo045/diabetes-detector/internal/model"
)

const cvFolds = 5

// Trainer fits the calibrated decision-tree pipeline and produces the
// model bundle and metadata files the serving process consumes.
type Trainer struct {
	cfg    TreeConfig
	seed   int64
	logger *zap.Logger
}

// NewTrainer creates a trainer with the given growth limits and seed.
func NewTrainer(cfg TreeConfig, seed int64, logger *zap.Logger) *Trainer {
	return &Trainer{cfg: cfg, seed: seed, logger: logger}
}

// Train fits the full pipeline on the dataset: standard scaling, an
// entropy tree, and sigmoid calibration fitted on out-of-fold scores from
// a stratified 5-fold split. Returns the bundle and its metadata.
func (t *Trainer) Train(ds *Dataset) (*model.Bundle, *model.Metadata, error) {
	if len(ds.X) < cvFolds*2 {
		return nil, nil, fmt.Errorf("dataset too small: %d rows", len(ds.X))
	}

	scaler := model.FitScaler(ds.X)
	scaled := make([][]float64, len(ds.X))
	for i, row := range ds.X {
		scaled[i] = scaler.Transform(row)
	}

	folds := stratifiedFolds(ds.Y, cvFolds, t.seed)

	// Out-of-fold scores drive both the calibration fit and the CV
	// accuracy estimate, so neither ever sees its own training rows.
	oofScores := make([]float64, 0, len(ds.Y))
	oofTargets := make([]int, 0, len(ds.Y))
	foldAccuracies := make([]float64, 0, cvFolds)

	for _, test := range folds {
		inTest := make(map[int]bool, len(test))
		for _, i := range test {
			inTest[i] = true
		}

		var trainX [][]float64
		var trainY []int
		for i := range scaled {
			if !inTest[i] {
				trainX = append(trainX, scaled[i])
				trainY = append(trainY, ds.Y[i])
			}
		}

		tree := BuildTree(trainX, trainY, t.cfg)

		pred := make([]int, 0, len(test))
		truth := make([]int, 0, len(test))
		for _, i := range test {
			score := tree.PredictProba(scaled[i])[1]
			oofScores = append(oofScores, score)
			oofTargets = append(oofTargets, ds.Y[i])
			pred = append(pred, tree.Predict(scaled[i]))
			truth = append(truth, ds.Y[i])
		}
		foldAccuracies = append(foldAccuracies, Accuracy(pred, truth))
	}

	cvAccuracy := mean(foldAccuracies)
	t.logger.Info("Cross-validation complete",
		zap.Float64("mean_accuracy", cvAccuracy),
		zap.Float64("std", stddev(foldAccuracies)))

	calibration := model.FitSigmoid(oofScores, oofTargets)
	finalTree := BuildTree(scaled, ds.Y, t.cfg)

	pipeline := &model.CalibratedPipeline{
		Scaler:      scaler,
		Tree:        finalTree,
		Calibration: calibration,
	}

	pred := make([]int, len(ds.X))
	proba := make([]float64, len(ds.X))
	for i, row := range ds.X {
		pred[i] = pipeline.Predict(row)
		proba[i] = pipeline.PredictProba(row)[1]
	}

	precision, recall, f1 := WeightedPRF(pred, ds.Y)
	metrics := map[string]float64{
		"accuracy":  round4(Accuracy(pred, ds.Y)),
		"roc_auc":   round4(ROCAUC(proba, ds.Y)),
		"precision": round4(precision),
		"recall":    round4(recall),
		"f1_score":  round4(f1),
	}

	now := time.Now()
	bundle := &model.Bundle{
		Model:       pipeline,
		Features:    core.Features(),
		TargetNames: []string{core.LabelNegative, core.LabelPositive},
		Timestamp:   now,
	}
	meta := &model.Metadata{
		Algorithm:     "Calibrated Decision Tree (Entropy)",
		TrainingDate:  now.Format("2006-01-02 15:04:05"),
		AccuracyCV:    round4(cvAccuracy),
		AccuracyTrain: metrics["accuracy"],
		Metrics:       metrics,
		Confusion:     Confusion(pred, ds.Y),
		TopFeatures:   topFeatures(finalTree, 5),
	}

	return bundle, meta, nil
}

// stratifiedFolds partitions indices into k folds with per-class
// round-robin assignment after a seeded shuffle.
func stratifiedFolds(y []int, k int, seed int64) [][]int {
	rng := rand.New(rand.NewSource(seed))
	folds := make([][]int, k)

	for _, class := range []int{0, 1} {
		var indices []int
		for i, t := range y {
			if t == class {
				indices = append(indices, i)
			}
		}
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
		for pos, idx := range indices {
			folds[pos%k] = append(folds[pos%k], idx)
		}
	}
	return folds
}

func topFeatures(tree *model.DecisionTree, n int) map[string]float64 {
	importances := tree.FeatureImportances()
	names := core.Features()

	type pair struct {
		name  string
		value float64
	}
	ranked := make([]pair, 0, len(importances))
	for i, imp := range importances {
		if i < len(names) {
			ranked = append(ranked, pair{names[i], imp})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].value > ranked[j].value })

	top := make(map[string]float64, n)
	for i, p := range ranked {
		if i == n {
			break
		}
		if p.value <= 0 {
			continue
		}
		top[p.name] = round4(p.value)
	}
	return top
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func stddev(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := mean(vals)
	sum := 0.0
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)))
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
