package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Metadata describes a trained model's quality. It is written by the
// trainer and served verbatim by the model-info endpoint; inference never
// reads it.
type Metadata struct {
	Algorithm     string             `json:"algorithm"`
	TrainingDate  string             `json:"training_date"`
	AccuracyCV    float64            `json:"accuracy_cv"`
	AccuracyTrain float64            `json:"accuracy_train"`
	Metrics       map[string]float64 `json:"metrics"`
	Confusion     ConfusionMatrix    `json:"confusion_matrix"`
	TopFeatures   map[string]float64 `json:"top_features"`
}

// ConfusionMatrix holds the four binary-classification counts.
type ConfusionMatrix struct {
	TN int `json:"tn"`
	FP int `json:"fp"`
	FN int `json:"fn"`
	TP int `json:"tp"`
}

// SaveMetadata writes metadata as indented JSON.
func SaveMetadata(path string, meta *Metadata) error {
	data, err := json.MarshalIndent(meta, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode model metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write model metadata: %w", err)
	}
	return nil
}

// LoadMetadataRaw reads the metadata file as a generic document so the
// HTTP layer can return it without reshaping.
func LoadMetadataRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model metadata: %w", err)
	}
	var meta map[string]any
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode model metadata: %w", err)
	}
	return meta, nil
}
