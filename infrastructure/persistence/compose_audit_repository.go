package persistence

import (
	"context"
	"database/sql"
	"time"

	"content-planner/domain/model"
)

// ComposeAuditRepository stores submission outcomes in PostgreSQL.
type ComposeAuditRepository struct {
	db *sql.DB
}

func NewComposeAuditRepository(db *sql.DB) *ComposeAuditRepository {
	return &ComposeAuditRepository{db: db}
}

func (r *ComposeAuditRepository) CreateAudit(ctx context.Context, audits []*model.ComposeAudit) error {
	if len(audits) == 0 {
		return nil
	}
	q := `INSERT INTO compose_audit (session_id, user_id, mode, platform, publish_at, status, error_message, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`
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

func (r *ComposeAuditRepository) ListBySession(ctx context.Context, sessionID string) ([]*model.ComposeAudit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, session_id, user_id, mode, platform, publish_at, status, error_message, created_at FROM compose_audit WHERE session_id=$1 ORDER BY id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAudits(rows)
}

func scanAudits(rows *sql.Rows) ([]*model.ComposeAudit, error) {
	var list []*model.ComposeAudit
	for rows.Next() {
		a := &model.ComposeAudit{}
		var publishAt, errMsg sql.NullString
		if err := rows.Scan(&a.ID, &a.SessionID, &a.UserID, &a.Mode, &a.Platform, &publishAt, &a.Status, &errMsg, &a.CreatedAt); err != nil {
			return nil, err
		}
		if publishAt.Valid {
			a.PublishAt = &publishAt.String
		}
		if errMsg.Valid {
			a.ErrorMessage = &errMsg.String
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
