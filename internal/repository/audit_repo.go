package repository

import (
	"context"

	"task_tracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepository persists audit entries. details is a JSONB column; pgx
// encodes and decodes the map directly.
type AuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create stores entry and fills in its id and created_at.
func (r *AuditRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	details := entry.Details
	if details == nil {
		details = map[string]interface{}{}
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO audit_logs (user_id, action, category, details, ip, user_agent)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		entry.UserID, entry.Action, entry.Category, details, entry.IP, entry.UserAgent,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// ListByUser returns up to limit entries for userID, newest first.
func (r *AuditRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.AuditLog, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, action, category, details, ip, user_agent, created_at
		 FROM audit_logs
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	logs, err := pgx.CollectRows(rows, scanAuditLog)
	if logs == nil && err == nil {
		logs = []*domain.AuditLog{}
	}
	return logs, err
}

func scanAuditLog(row pgx.CollectableRow) (*domain.AuditLog, error) {
	var a domain.AuditLog
	if err := row.Scan(&a.ID, &a.UserID, &a.Action, &a.Category, &a.Details, &a.IP, &a.UserAgent, &a.CreatedAt); err != nil {
		return nil, err
	}
	if a.Details == nil {
		a.Details = map[string]interface{}{}
	}
	return &a, nil
}
