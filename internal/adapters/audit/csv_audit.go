package audit

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/adiprasetyo045/diabetes-detector/internal/core"
)

// timeLayout is the timestamp format written to the log.
const timeLayout = "2006-01-02 15:04:05"

// CSVAudit appends predictions to a CSV file. The column order is fixed
// once the file exists: timestamp, prediction, probability, then every
// schema feature in schema order. The header is written exactly once,
// when the file is created.
type CSVAudit struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

// NewCSVAudit creates a CSV-backed audit log at the given path. The file
// itself is created lazily on first append.
func NewCSVAudit(path string, logger *zap.Logger) *CSVAudit {
	return &CSVAudit{path: path, logger: logger}
}

func auditHeader() []string {
	return append([]string{"timestamp", "prediction", "probability"}, core.Features()...)
}

// Append writes one row, creating the file with a header first when it
// does not exist yet. The existence check and the first write are one
// critical section; concurrent appends are serialized.
func (a *CSVAudit) Append(ctx context.Context, input core.RawRecord, prediction, probability string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, statErr := os.Stat(a.path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(auditHeader()); err != nil {
			return fmt.Errorf("failed to write audit header: %w", err)
		}
	}

	row := make([]string, 0, 3+core.FeatureCount())
	row = append(row, time.Now().Format(timeLayout), prediction, probability)
	for _, feature := range core.Features() {
		row = append(row, stringValue(input[feature]))
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("failed to write audit row: %w", err)
	}

	w.Flush()
	return w.Error()
}

// Recent reads the log and returns up to n entries, newest first. A log
// that does not exist yet yields an empty slice.
func (a *CSVAudit) Recent(ctx context.Context, n int) ([]core.AuditEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := os.Open(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []core.AuditEntry{}, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	if len(rows) <= 1 {
		return []core.AuditEntry{}, nil
	}

	data := rows[1:]
	if len(data) > n {
		data = data[len(data)-n:]
	}

	entries := make([]core.AuditEntry, 0, len(data))
	for i := len(data) - 1; i >= 0; i-- {
		entries = append(entries, rowToEntry(data[i]))
	}
	return entries, nil
}

// Close is a no-op; every append opens and closes the file itself.
func (a *CSVAudit) Close() error {
	return nil
}

func rowToEntry(row []string) core.AuditEntry {
	entry := core.AuditEntry{Input: core.RawRecord{}}
	get := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	if ts, err := time.ParseInLocation(timeLayout, get(0), time.Local); err == nil {
		entry.Timestamp = ts
	}
	entry.Prediction = get(1)
	entry.Probability = get(2)
	for i, feature := range core.Features() {
		entry.Input[feature] = get(3 + i)
	}
	return entry
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return trimFloat(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// trimFloat renders whole numbers without a decimal tail so logged values
// read like the submitted form values.
func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
