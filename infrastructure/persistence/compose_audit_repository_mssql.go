package persistence

import (
	"context"
	"database/sql"
	"time"

	"content-planner/domain/model"
)

// ComposeAuditRepositoryMSSQL stores submission outcomes in SQL Server.
type ComposeAuditRepositoryMSSQL struct {
	db *sql.DB
}

func NewComposeAuditRepositoryMSSQL(db *sql.DB) *ComposeAuditRepositoryMSSQL {
	return &ComposeAuditRepositoryMSSQL{db: db}
}

func (r *ComposeAuditRepositoryMSSQL) CreateAudit(ctx context.Context, audits []*model.ComposeAudit) error {
	if len(audits) == 0 {
		return nil
	}
	q := `INSERT INTO dbo.[compose_audit] (session_id, user_id, mode, platform, publish_at, status, error_message, created_at) OUTPUT INSERTED.id VALUES (@p1,@p2,@p3,@p4,@p5,@p6,@p7,@p8)`
	now := time.Now().UTC()
	for _, a := range audits {
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		row := r.db.QueryRowContext(ctx, q, a.SessionID, a.UserID, a.Mode, a.Platform, a.PublishAt, a.Status, a.ErrorMessage, a.CreatedAt)
		if err := row.Scan(&a.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *ComposeAuditRepositoryMSSQL) ListBySession(ctx context.Context, sessionID string) ([]*model.ComposeAudit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, session_id, user_id, mode, platform, publish_at, status, error_message, created_at FROM dbo.[compose_audit] WHERE session_id=@p1 ORDER BY id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAudits(rows)
}
