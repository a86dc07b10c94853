package training

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/adiprasetyo045/diabetes-detector/internal/core"
)

// Dataset is an encoded training set: one feature vector in schema order
// per row, with its binary target.
type Dataset struct {
	X       [][]float64
	Y       []int
	Dropped int
}

// LoadDataset reads a CSV training file, encodes every row through the
// same preprocessor the serving path uses, and extracts the target
// column. Rows that fail to encode are dropped and counted, matching
// training-time cleaning semantics.
func LoadDataset(path, targetColumn string, pre *core.Preprocessor) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("dataset %s has no data rows", path)
	}

	header := rows[0]
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}

	targetIdx, ok := colIndex[targetColumn]
	if !ok {
		return nil, fmt.Errorf("dataset has no target column %q", targetColumn)
	}
	for _, feature := range core.Features() {
		if _, ok := colIndex[feature]; !ok {
			return nil, fmt.Errorf("dataset has no feature column %q", feature)
		}
	}

	ds := &Dataset{}
	for _, row := range rows[1:] {
		record := make(core.RawRecord, core.FeatureCount())
		for _, feature := range core.Features() {
			record[feature] = row[colIndex[feature]]
		}

		target, err := parseTarget(row[targetIdx])
		if err != nil {
			ds.Dropped++
			continue
		}

		encoded, dropped, err := pre.CleanAndEncode([]core.RawRecord{record}, true)
		if err != nil {
			return nil, err
		}
		if dropped > 0 || len(encoded) == 0 {
			ds.Dropped++
			continue
		}

		vectors, err := pre.GetFeatures(encoded)
		if err != nil {
			return nil, err
		}

		ds.X = append(ds.X, vectors[0])
		ds.Y = append(ds.Y, target)
	}

	if len(ds.X) == 0 {
		return nil, fmt.Errorf("dataset %s is empty after preprocessing", path)
	}
	return ds, nil
}

func parseTarget(raw string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "yes", "ya", "true", "diabetic":
		return 1, nil
	case "0", "no", "tidak", "false", "non-diabetic":
		return 0, nil
	default:
		return 0, fmt.Errorf("unknown target value %q", raw)
	}
}
