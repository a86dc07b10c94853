package audit

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/adiprasetyo045/diabetes-detector/internal/core"
)

// sqlAudit implements the audit log on any database/sql driver whose
// placeholders are '?'. The table mirrors the CSV layout: one column per
// schema feature, in schema order, plus timestamp, prediction and
// probability.
type sqlAudit struct {
	db     *sql.DB
	logger *zap.Logger
}

func createTableStmt(idColumn string) string {
	cols := []string{idColumn, "ts TEXT", "prediction TEXT", "probability TEXT"}
	for _, feature := range core.Features() {
		cols = append(cols, feature+" TEXT")
	}
	return "CREATE TABLE IF NOT EXISTS prediction_logs (" + strings.Join(cols, ", ") + ")"
}

func insertStmt() string {
	cols := append([]string{"ts", "prediction", "probability"}, core.Features()...)
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return "INSERT INTO prediction_logs (" + strings.Join(cols, ", ") + ") VALUES (" + marks + ")"
}

func selectStmt() string {
	cols := append([]string{"ts", "prediction", "probability"}, core.Features()...)
	return "SELECT " + strings.Join(cols, ", ") + " FROM prediction_logs ORDER BY id DESC LIMIT ?"
}

func (a *sqlAudit) Append(ctx context.Context, input core.RawRecord, prediction, probability string) error {
	args := make([]any, 0, 3+core.FeatureCount())
	args = append(args, time.Now().Format(timeLayout), prediction, probability)
	for _, feature := range core.Features() {
		args = append(args, stringValue(input[feature]))
	}

	if _, err := a.db.ExecContext(ctx, insertStmt(), args...); err != nil {
		return fmt.Errorf("failed to insert audit row: %w", err)
	}
	return nil
}

func (a *sqlAudit) Recent(ctx context.Context, n int) ([]core.AuditEntry, error) {
	rows, err := a.db.QueryContext(ctx, selectStmt(), n)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	features := core.Features()
	entries := make([]core.AuditEntry, 0, n)
	for rows.Next() {
		fields := make([]string, 3+len(features))
		dest := make([]any, len(fields))
		for i := range fields {
			dest[i] = &fields[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		entries = append(entries, rowToEntry(fields))
	}
	return entries, rows.Err()
}

func (a *sqlAudit) Close() error {
	return a.db.Close()
}
