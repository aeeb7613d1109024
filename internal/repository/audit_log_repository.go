package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusflow/disruption-service/internal/domain"
)

// AuditLogRepository appends immutable audit trail entries.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

type auditLogRepository struct {
	pool *pgxpool.Pool
}

// NewAuditLogRepository constructs repository.
func NewAuditLogRepository(pool *pgxpool.Pool) AuditLogRepository {
	return &auditLogRepository{pool: pool}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	meta, err := json.Marshal(entry.Meta)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO audit_logs (actor_id, action, target_table, target_id, meta)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.ActorID,
		entry.Action,
		entry.TargetTable,
		entry.TargetID,
		string(meta),
	).Scan(&entry.ID, &entry.CreatedAt)
}
