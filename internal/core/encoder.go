package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Preprocessor applies the schema-fixed categorical encodings. The same
// instance (and therefore the same rules) is used for training-set
// preparation and for live inference; any divergence between the two
// silently corrupts predictions, so there is exactly one implementation.
type Preprocessor struct{}

// NewPreprocessor returns the shared encoder. It carries no state; the
// encoding rules are fixed by the schema.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{}
}

var genderCodes = map[string]float64{
	"male": 1, "m": 1, "laki-laki": 1, "l": 1, "1": 1,
	"female": 0, "f": 0, "perempuan": 0, "p": 0, "0": 0,
}

var flagCodes = map[string]float64{
	"yes": 1, "ya": 1, "true": 1, "1": 1,
	"no": 0, "tidak": 0, "false": 0, "0": 0,
}

// CleanAndEncode encodes every record into numeric form. At training time
// records that fail to encode are dropped and counted; at serving time the
// first failure is returned as an error so the caller rejects the record
// instead of feeding garbage to the model.
func (p *Preprocessor) CleanAndEncode(records []RawRecord, training bool) ([]EncodedRecord, int, error) {
	encoded := make([]EncodedRecord, 0, len(records))
	dropped := 0

	for _, record := range records {
		enc, err := p.encodeRecord(record)
		if err != nil {
			if training {
				dropped++
				continue
			}
			return nil, 0, err
		}
		encoded = append(encoded, enc)
	}

	return encoded, dropped, nil
}

// GetFeatures projects encoded records into schema order, producing the
// matrix shape the classifier expects. A schema feature absent from any
// record is an error, never silently filled or reordered.
func (p *Preprocessor) GetFeatures(records []EncodedRecord) ([][]float64, error) {
	matrix := make([][]float64, 0, len(records))

	for i, record := range records {
		row := make([]float64, len(featureOrder))
		for j, feature := range featureOrder {
			val, ok := record[feature]
			if !ok {
				return nil, fmt.Errorf("record %d is missing feature %q", i, feature)
			}
			row[j] = val
		}
		matrix = append(matrix, row)
	}

	return matrix, nil
}

func (p *Preprocessor) encodeRecord(record RawRecord) (EncodedRecord, error) {
	enc := make(EncodedRecord, len(featureOrder))
	for _, feature := range featureOrder {
		raw, ok := record[feature]
		if !ok {
			return nil, fmt.Errorf("feature %q is missing", feature)
		}
		val, err := encodeValue(feature, raw)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", feature, err)
		}
		enc[feature] = val
	}
	return enc, nil
}

func encodeValue(feature string, raw any) (float64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, fmt.Errorf("value is nil")
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		return encodeString(feature, v)
	default:
		return 0, fmt.Errorf("unsupported value type %T", raw)
	}
}

func encodeString(feature, s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("value is empty")
	}

	if feature == "gender" {
		if code, ok := genderCodes[s]; ok {
			return code, nil
		}
		return 0, fmt.Errorf("unknown gender %q", s)
	}

	if IsCategorical(feature) {
		if code, ok := flagCodes[s]; ok {
			return code, nil
		}
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as a number", s)
	}
	return val, nil
}
