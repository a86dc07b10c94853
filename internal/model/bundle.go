package model

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/adiprasetyo045/diabetes-detector/internal/core"
)

// Bundle owns everything a process needs to serve the trained model: the
// fitted pipeline, the feature-schema snapshot it was trained against,
// the target class names and the training timestamp. Immutable once
// written; shared read-only across requests.
type Bundle struct {
	Model       *CalibratedPipeline `json:"model"`
	Features    []string            `json:"features"`
	TargetNames []string            `json:"target_names"`
	Timestamp   time.Time           `json:"timestamp"`
}

// LoadBundle reads a bundle file and verifies its schema snapshot against
// the compiled-in feature schema. A bundle trained against a different
// feature set or order is rejected outright; silently serving it would
// corrupt every prediction.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model bundle: %w", err)
	}

	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("failed to decode model bundle: %w", err)
	}
	if bundle.Model == nil || bundle.Model.Tree == nil {
		return nil, fmt.Errorf("model bundle %s has no classifier", path)
	}

	if err := checkSchema(bundle.Features); err != nil {
		return nil, fmt.Errorf("model bundle %s is incompatible: %w", path, err)
	}

	return &bundle, nil
}

// SaveBundle writes a bundle as indented JSON.
func SaveBundle(path string, bundle *Bundle) error {
	data, err := json.MarshalIndent(bundle, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode model bundle: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write model bundle: %w", err)
	}
	return nil
}

func checkSchema(snapshot []string) error {
	current := core.Features()
	if len(snapshot) != len(current) {
		return fmt.Errorf("trained with %d features, schema has %d", len(snapshot), len(current))
	}
	for i, name := range current {
		if snapshot[i] != name {
			return fmt.Errorf("feature %d is %q in the bundle but %q in the schema", i, snapshot[i], name)
		}
	}
	return nil
}
