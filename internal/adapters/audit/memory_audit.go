package audit

import (
	"context"
	"sync"
	"time"

	"github.com/adiprasetyo045/diabetes-detector/internal/core"
)

// MemoryAudit is an in-memory implementation of the audit log, for tests
// and ephemeral deployments that do not need a durable trail.
type MemoryAudit struct {
	mu      sync.Mutex
	entries []core.AuditEntry
}

// NewMemoryAudit creates an empty in-memory audit log.
func NewMemoryAudit() *MemoryAudit {
	return &MemoryAudit{}
}

// Append records one entry.
func (a *MemoryAudit) Append(ctx context.Context, input core.RawRecord, prediction, probability string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	snapshot := make(core.RawRecord, len(input))
	for k, v := range input {
		snapshot[k] = v
	}
	a.entries = append(a.entries, core.AuditEntry{
		Timestamp:   time.Now(),
		Prediction:  prediction,
		Probability: probability,
		Input:       snapshot,
	})
	return nil
}

// Recent returns up to n entries, newest first.
func (a *MemoryAudit) Recent(ctx context.Context, n int) ([]core.AuditEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := 0
	if len(a.entries) > n {
		start = len(a.entries) - n
	}
	recent := a.entries[start:]

	out := make([]core.AuditEntry, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		out = append(out, recent[i])
	}
	return out, nil
}

// Close is a no-op.
func (a *MemoryAudit) Close() error {
	return nil
}
