package audit

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"go.uber.org/zap"
)

// MySQLAudit is a MySQL-backed audit log for deployments that already run
// a database server.
type MySQLAudit struct {
	sqlAudit
}

// NewMySQLAudit connects to MySQL with the given DSN and ensures the
// audit table exists.
func NewMySQLAudit(dsn string, logger *zap.Logger) (*MySQLAudit, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	if _, err := db.Exec(createTableStmt("id BIGINT AUTO_INCREMENT PRIMARY KEY")); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create audit table: %w", err)
	}

	return &MySQLAudit{sqlAudit{db: db, logger: logger}}, nil
}
