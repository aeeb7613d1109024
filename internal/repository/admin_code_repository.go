package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusflow/disruption-service/internal/domain"
)

// AdminCodeRepository reads department enrollment codes.
type AdminCodeRepository interface {
	ListActiveByDepartment(ctx context.Context, departmentID string) ([]domain.AdminCode, error)
}

type adminCodeRepository struct {
	pool *pgxpool.Pool
}

// NewAdminCodeRepository constructs repository.
func NewAdminCodeRepository(pool *pgxpool.Pool) AdminCodeRepository {
	return &adminCodeRepository{pool: pool}
}

func (r *adminCodeRepository) ListActiveByDepartment(ctx context.Context, departmentID string) ([]domain.AdminCode, error) {
	const query = `
        SELECT id, department_id, code_hash, created_at, expires_at, is_active
        FROM admin_codes
        WHERE department_id=$1 AND is_active=TRUE
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AdminCode
	for rows.Next() {
		var code domain.AdminCode
		if err := rows.Scan(
			&code.ID,
			&code.DepartmentID,
			&code.CodeHash,
			&code.CreatedAt,
			&code.ExpiresAt,
			&code.IsActive,
		); err != nil {
			return nil, err
		}
		result = append(result, code)
	}
	return result, rows.Err()
}
