package core

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
)

// maxExplanationEntries caps the ranked feature-importance explanation.
const maxExplanationEntries = 5

// PredictionService is the core inference service. It owns no mutable
// state of its own: the model provider serves the shared read-only bundle
// and the audit log is the only write path.
type PredictionService struct {
	models       ModelProvider
	preprocessor *Preprocessor
	audit        AuditLog
	logger       *zap.Logger
}

// NewPredictionService creates a new prediction service.
func NewPredictionService(
	models ModelProvider,
	preprocessor *Preprocessor,
	audit AuditLog,
	logger *zap.Logger,
) *PredictionService {
	return &PredictionService{
		models:       models,
		preprocessor: preprocessor,
		audit:        audit,
		logger:       logger,
	}
}

// Predict validates and encodes a raw record, runs it through the
// classifier and derives the full inference result. It returns
// ErrModelUnavailable when no bundle is loaded and *InvalidInputError for
// records that fail validation or encoding. Audit failures are reported
// to the logger and never alter the result.
func (s *PredictionService) Predict(ctx context.Context, record RawRecord) (*InferenceResult, error) {
	classifier, ok := s.models.Get()
	if !ok {
		if err := s.models.Reload(); err != nil {
			s.logger.Warn("Model reload failed", zap.Error(err))
		}
		if classifier, ok = s.models.Get(); !ok {
			return nil, ErrModelUnavailable
		}
	}

	validation := Validate(record)
	if !validation.IsValid {
		return nil, &InvalidInputError{Reasons: validation.Errors}
	}

	encoded, _, err := s.preprocessor.CleanAndEncode([]RawRecord{record}, false)
	if err != nil {
		return nil, &InvalidInputError{Reasons: []string{err.Error()}}
	}
	if len(encoded) == 0 {
		return nil, &InvalidInputError{Reasons: []string{"record could not be encoded"}}
	}

	features, err := s.preprocessor.GetFeatures(encoded)
	if err != nil {
		return nil, &InvalidInputError{Reasons: []string{err.Error()}}
	}
	vector := features[0]

	class := classifier.Predict(vector)
	probability := classProbability(classifier, vector, class)

	label := LabelForClass(class)
	probPercent := round2(probability * 100)

	result := &InferenceResult{
		Label:              label,
		ProbabilityPercent: probPercent,
		RiskLevel:          RiskLevel(probability),
		FeatureImportance:  s.explain(classifier),
		InputData:          record,
	}

	if err := s.audit.Append(ctx, record, label, fmt.Sprintf("%.2f%%", probPercent)); err != nil {
		s.logger.Error("Failed to append prediction to audit log", zap.Error(err))
	}

	return result, nil
}

// classProbability asks the model for the positive-class probability when
// it supports estimation, and otherwise derives a deterministic 0/1 value
// from the predicted class.
func classProbability(classifier Classifier, vector []float64, class int) float64 {
	if estimator, ok := classifier.(ProbabilityEstimator); ok {
		proba := estimator.PredictProba(vector)
		if len(proba) > 1 {
			return proba[1]
		}
	}
	if class == 1 {
		return 1.0
	}
	return 0.0
}

// explain ranks the model's feature importances, keeping at most five
// strictly positive entries scaled to percentages. A model without
// importances yields an empty explanation, not a failure.
func (s *PredictionService) explain(classifier Classifier) []FeatureWeight {
	reporter, ok := classifier.(ImportanceReporter)
	if !ok {
		return []FeatureWeight{}
	}

	importances := reporter.FeatureImportances()
	if len(importances) != len(featureOrder) {
		s.logger.Warn("Feature importance length does not match schema",
			zap.Int("got", len(importances)),
			zap.Int("want", len(featureOrder)))
		return []FeatureWeight{}
	}

	ranked := make([]FeatureWeight, 0, len(importances))
	for i, imp := range importances {
		ranked = append(ranked, FeatureWeight{Name: featureOrder[i], Value: imp})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})

	top := make([]FeatureWeight, 0, maxExplanationEntries)
	for _, fw := range ranked {
		if len(top) == maxExplanationEntries {
			break
		}
		if fw.Value <= 0 {
			continue
		}
		top = append(top, FeatureWeight{Name: fw.Name, Value: round2(fw.Value * 100)})
	}
	return top
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
