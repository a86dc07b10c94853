package core

import (
	"fmt"
	"strings"
)

// Validate checks a raw record against the feature schema: every feature
// must be present and non-blank. All problems are collected in one pass
// so the caller sees the full picture, and the input is never mutated.
func Validate(record RawRecord) ValidationResult {
	var missing, empty []string

	for _, feature := range featureOrder {
		val, ok := record[feature]
		if !ok {
			missing = append(missing, feature)
			continue
		}
		if isBlank(val) {
			empty = append(empty, feature)
		}
	}

	var errs []string
	if len(missing) > 0 {
		errs = append(errs, fmt.Sprintf("Data hilang: %s", strings.Join(missing, ", ")))
	}
	if len(empty) > 0 {
		errs = append(errs, fmt.Sprintf("Data kosong: %s", strings.Join(empty, ", ")))
	}

	return ValidationResult{
		IsValid: len(errs) == 0,
		Missing: missing,
		Empty:   empty,
		Errors:  errs,
	}
}

func isBlank(val any) bool {
	if val == nil {
		return true
	}
	if s, ok := val.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
