package audit

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteAudit is a SQLite-backed audit log.
type SQLiteAudit struct {
	sqlAudit
}

// NewSQLiteAudit opens (or creates) the SQLite audit database at dbPath.
func NewSQLiteAudit(dbPath string, logger *zap.Logger) (*SQLiteAudit, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if _, err := db.Exec(createTableStmt("id INTEGER PRIMARY KEY AUTOINCREMENT")); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create audit table: %w", err)
	}

	return &SQLiteAudit{sqlAudit{db: db, logger: logger}}, nil
}
