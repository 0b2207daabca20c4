package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const createComposeAuditMSSQL = `IF OBJECT_ID('dbo.compose_audit', 'U') IS NULL
CREATE TABLE dbo.[compose_audit] (
	id BIGINT IDENTITY(1,1) PRIMARY KEY,
	session_id NVARCHAR(64) NOT NULL,
	user_id NVARCHAR(128) NOT NULL,
	mode NVARCHAR(32) NOT NULL,
	platform NVARCHAR(32) NOT NULL,
	status NVARCHAR(16) NOT NULL,
	created_at DATETIME2 NOT NULL
)`

// EnsureComposeAuditSchemaMSSQL is the SQL Server variant of EnsureComposeAuditSchema.
func EnsureComposeAuditSchemaMSSQL(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, createComposeAuditMSSQL); err != nil {
		return fmt.Errorf("creating compose_audit failed: %w", err)
	}

	addIfMissing := func(column, ddl string) error {
		q := fmt.Sprintf(`IF COL_LENGTH('dbo.compose_audit', '%s') IS NULL BEGIN %s END`, column, ddl)
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure column compose_audit.%s: %w", column, err)
		}
		return nil
	}
	if err := addIfMissing("publish_at", "ALTER TABLE dbo.[compose_audit] ADD publish_at NVARCHAR(32) NULL"); err != nil {
		return err
	}
	if err := addIfMissing("error_message", "ALTER TABLE dbo.[compose_audit] ADD error_message NVARCHAR(MAX) NULL"); err != nil {
		return err
	}
	return nil
}
