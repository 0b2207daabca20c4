package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const createComposeAuditPostgres = `CREATE TABLE IF NOT EXISTS compose_audit (
	id BIGSERIAL PRIMARY KEY,
	session_id VARCHAR(64) NOT NULL,
	user_id VARCHAR(128) NOT NULL,
	mode VARCHAR(32) NOT NULL,
	platform VARCHAR(32) NOT NULL,
	status VARCHAR(16) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

// EnsureComposeAuditSchema creates the audit table and adds columns introduced later.
// Safe to call at every startup.
func EnsureComposeAuditSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, createComposeAuditPostgres); err != nil {
		return fmt.Errorf("creating compose_audit failed: %w", err)
	}

	checks := []struct {
		column string
		ddl    string
	}{
		{"publish_at", "ALTER TABLE compose_audit ADD COLUMN publish_at VARCHAR(32)"},
		{"error_message", "ALTER TABLE compose_audit ADD COLUMN error_message TEXT"},
	}
	for _, c := range checks {
		exists, err := columnExists(ctx, db, "compose_audit", c.column)
		if err != nil {
			return err
		}
		if !exists {
			if _, err := db.ExecContext(ctx, c.ddl); err != nil {
				return fmt.Errorf("adding column compose_audit.%s failed: %w", c.column, err)
			}
		}
	}

	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_compose_audit_session ON compose_audit (session_id)`); err != nil {
		return fmt.Errorf("creating compose_audit index failed: %w", err)
	}
	return nil
}

func columnExists(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	row := db.QueryRowContext(ctx, `SELECT 1 FROM information_schema.columns WHERE table_name=$1 AND column_name=$2`, table, column)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
