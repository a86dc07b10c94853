package core

import (
	"fmt"
	"strings"
	"time"
)

// Class labels produced by the binary classifier.
const (
	LabelPositive = "Diabetic"
	LabelNegative = "Non-Diabetic"
)

// Risk tiers derived from the calibrated probability. Thresholds are
// fixed policy, not configuration.
const (
	RiskHigh   = "Tinggi"
	RiskMedium = "Sedang"
	RiskLow    = "Rendah"

	riskHighThreshold   = 0.70
	riskMediumThreshold = 0.40
)

// RawRecord is a patient record as submitted by a caller, keyed by schema
// feature name. Values are whatever JSON decoding produced: strings,
// numbers, or nil.
type RawRecord map[string]any

// EncodedRecord is a raw record after categorical encoding, every value
// numeric.
type EncodedRecord map[string]float64

// ValidationResult reports every schema feature that is absent or blank
// in a raw record, in one pass.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Missing []string `json:"missing"`
	Empty   []string `json:"empty"`
	Errors  []string `json:"errors"`
}

// FeatureWeight is one entry of a ranked feature-importance explanation,
// scaled to a 0-100 percentage.
type FeatureWeight struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// InferenceResult is the outcome of one prediction. Constructed per
// request and never retained by the service.
type InferenceResult struct {
	Label              string          `json:"label"`
	ProbabilityPercent float64         `json:"probability_percent"`
	RiskLevel          string          `json:"risk_level"`
	FeatureImportance  []FeatureWeight `json:"feature_importance"`
	InputData          RawRecord       `json:"input_data"`
}

// AuditEntry is one persisted prediction: when it happened, what the
// model said, and the raw input it said it about.
type AuditEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Prediction  string    `json:"prediction"`
	Probability string    `json:"probability"`
	Input       RawRecord `json:"input"`
}

// RiskLevel maps a calibrated probability to its policy tier.
func RiskLevel(probability float64) string {
	switch {
	case probability >= riskHighThreshold:
		return RiskHigh
	case probability >= riskMediumThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// LabelForClass maps a predicted class index to its label. Class 1 is the
// positive (diabetic) class.
func LabelForClass(class int) string {
	if class == 1 {
		return LabelPositive
	}
	return LabelNegative
}

// InvalidInputError rejects a raw record, carrying the itemized reasons
// so the caller can surface every problem at once.
type InvalidInputError struct {
	Reasons []string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", strings.Join(e.Reasons, "; "))
}
