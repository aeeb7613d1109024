package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusflow/disruption-service/internal/domain"
)

// DisruptionImageRepository persists evidence image metadata.
type DisruptionImageRepository interface {
	Create(ctx context.Context, image *domain.DisruptionImage) error
	ListByDisruption(ctx context.Context, disruptionRowID string) ([]domain.DisruptionImage, error)
}

type disruptionImageRepository struct {
	pool *pgxpool.Pool
}

// NewDisruptionImageRepository constructs repository.
func NewDisruptionImageRepository(pool *pgxpool.Pool) DisruptionImageRepository {
	return &disruptionImageRepository{pool: pool}
}

func (r *disruptionImageRepository) Create(ctx context.Context, image *domain.DisruptionImage) error {
	const query = `
        INSERT INTO disruption_images (disruption_id, url, filename, filesize)
        VALUES ($1,$2,$3,$4)
        RETURNING id, uploaded_at`
	return r.pool.QueryRow(ctx, query,
		image.DisruptionID,
		image.URL,
		image.Filename,
		image.Filesize,
	).Scan(&image.ID, &image.UploadedAt)
}

func (r *disruptionImageRepository) ListByDisruption(ctx context.Context, disruptionRowID string) ([]domain.DisruptionImage, error) {
	const query = `
        SELECT id, disruption_id, url, filename, filesize, uploaded_at
        FROM disruption_images WHERE disruption_id=$1
        ORDER BY uploaded_at ASC`
	rows, err := r.pool.Query(ctx, query, disruptionRowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DisruptionImage
	for rows.Next() {
		var image domain.DisruptionImage
		if err := rows.Scan(
			&image.ID,
			&image.DisruptionID,
			&image.URL,
			&image.Filename,
			&image.Filesize,
			&image.UploadedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, image)
	}
	return result, rows.Err()
}
