package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusflow/disruption-service/internal/domain"
)

// ResolutionRepository reads the append-only resolution history. Writes happen
// inside the disruption repository's resolve transaction.
type ResolutionRepository interface {
	ListByDisruption(ctx context.Context, disruptionRowID string) ([]domain.Resolution, error)
}

type resolutionRepository struct {
	pool *pgxpool.Pool
}

// NewResolutionRepository constructs repository.
func NewResolutionRepository(pool *pgxpool.Pool) ResolutionRepository {
	return &resolutionRepository{pool: pool}
}

func (r *resolutionRepository) ListByDisruption(ctx context.Context, disruptionRowID string) ([]domain.Resolution, error) {
	const query = `
        SELECT id, disruption_id, resolved_by, resolution_description, resolution_image_url, created_at
        FROM resolutions WHERE disruption_id=$1
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, disruptionRowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Resolution
	for rows.Next() {
		var resolution domain.Resolution
		if err := rows.Scan(
			&resolution.ID,
			&resolution.DisruptionID,
			&resolution.ResolvedBy,
			&resolution.Description,
			&resolution.ResolutionImageURL,
			&resolution.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, resolution)
	}
	return result, rows.Err()
}
