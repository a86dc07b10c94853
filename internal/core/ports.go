package core

import (
	"context"
	"errors"
)

// ErrModelUnavailable signals that no trained model bundle could be
// loaded. Callers should treat it as "service not ready", not as a
// rejection of the input.
var ErrModelUnavailable = errors.New("model bundle not available")

// Classifier is the minimum capability a trained model must provide:
// map a feature vector in schema order to a class index.
type Classifier interface {
	Predict(x []float64) int
}

// ProbabilityEstimator is the optional capability of reporting per-class
// probabilities. Index 1 is the positive class.
type ProbabilityEstimator interface {
	PredictProba(x []float64) []float64
}

// ImportanceReporter is the optional capability of exposing per-feature
// importance scores, aligned with schema order.
type ImportanceReporter interface {
	FeatureImportances() []float64
}

// ModelProvider hands out the currently loaded classifier. Reload is
// idempotent; the last successful load wins.
type ModelProvider interface {
	// Get returns the active classifier, or false when none is loaded.
	Get() (Classifier, bool)

	// Reload attempts to (re)load the model from its backing store.
	Reload() error
}

// AuditLog records every prediction to a durable append-only store.
type AuditLog interface {
	// Append writes one row. Probability is the already-formatted
	// percentage string stored verbatim.
	Append(ctx context.Context, input RawRecord, prediction string, probability string) error

	// Recent returns up to n entries, newest first.
	Recent(ctx context.Context, n int) ([]AuditEntry, error)

	// Close releases the underlying store.
	Close() error
}

// ReportRenderer turns a completed prediction into a retrievable
// document and returns its handle (file name).
type ReportRenderer interface {
	Render(input RawRecord, label string, probabilityPercent float64) (string, error)
}
