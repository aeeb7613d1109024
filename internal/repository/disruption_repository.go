package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusflow/disruption-service/internal/domain"
)

// DisruptionRepository encapsulates disruption persistence. Soft-deleted rows
// are invisible to every method.
type DisruptionRepository interface {
	Create(ctx context.Context, disruption *domain.Disruption) error
	GetByDisruptionID(ctx context.Context, disruptionID string) (*domain.Disruption, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Disruption, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Disruption, error)
	SetToneAnnotation(ctx context.Context, disruptionID string, tone *domain.ToneAnnotation) error
	Resolve(ctx context.Context, disruptionID string, resolution *domain.Resolution) (*domain.Disruption, error)
}

type disruptionRepository struct {
	pool *pgxpool.Pool
}

// NewDisruptionRepository instantiates repository.
func NewDisruptionRepository(pool *pgxpool.Pool) DisruptionRepository {
	return &disruptionRepository{pool: pool}
}

const disruptionColumns = `id, disruption_id, student_id, student_name, student_email, category, priority,
       description, status, tone, tone_confidence, tone_recommendation,
       created_at, updated_at, resolved_at, resolved_by, is_deleted`

func (r *disruptionRepository) Create(ctx context.Context, disruption *domain.Disruption) error {
	const query = `
        INSERT INTO disruptions (disruption_id, student_id, student_name, student_email, category, priority, description, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		disruption.DisruptionID,
		disruption.StudentID,
		disruption.StudentName,
		disruption.StudentEmail,
		disruption.Category,
		disruption.Priority,
		disruption.Description,
		disruption.Status,
	).Scan(&disruption.ID, &disruption.CreatedAt, &disruption.UpdatedAt)
}

func (r *disruptionRepository) GetByDisruptionID(ctx context.Context, disruptionID string) (*domain.Disruption, error) {
	const query = `SELECT ` + disruptionColumns + ` FROM disruptions WHERE disruption_id=$1 AND is_deleted=FALSE`
	row := r.pool.QueryRow(ctx, query, disruptionID)
	return scanDisruptionRow(row)
}

func (r *disruptionRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.Disruption, error) {
	const query = `SELECT ` + disruptionColumns + `
        FROM disruptions WHERE student_id=$1 AND is_deleted=FALSE
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDisruptions(rows)
}

func (r *disruptionRepository) ListByCategory(ctx context.Context, category string) ([]domain.Disruption, error) {
	const query = `SELECT ` + disruptionColumns + `
        FROM disruptions WHERE category=$1 AND is_deleted=FALSE
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDisruptions(rows)
}

func (r *disruptionRepository) SetToneAnnotation(ctx context.Context, disruptionID string, tone *domain.ToneAnnotation) error {
	if tone == nil {
		return nil
	}
	const query = `
        UPDATE disruptions SET tone=$1, tone_confidence=$2, tone_recommendation=$3, updated_at=NOW()
        WHERE disruption_id=$4 AND is_deleted=FALSE`
	cmd, err := r.pool.Exec(ctx, query, tone.Tone, tone.Confidence, tone.Recommendation, disruptionID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Resolve flips the disruption to resolved and appends the resolution record
// in a single transaction. The status guard in the UPDATE serializes
// concurrent resolvers: the loser gets ErrAlreadyResolved.
func (r *disruptionRepository) Resolve(ctx context.Context, disruptionID string, resolution *domain.Resolution) (*domain.Disruption, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const update = `
        UPDATE disruptions
        SET status='resolved', resolved_at=NOW(), resolved_by=$1, updated_at=NOW()
        WHERE disruption_id=$2 AND is_deleted=FALSE AND status <> 'resolved'
        RETURNING ` + disruptionColumns
	row := tx.QueryRow(ctx, update, resolution.ResolvedBy, disruptionID)
	disruption, err := scanDisruptionRow(row)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		// Distinguish unknown id from already-resolved.
		var exists bool
		if checkErr := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM disruptions WHERE disruption_id=$1 AND is_deleted=FALSE)`,
			disruptionID,
		).Scan(&exists); checkErr != nil {
			return nil, checkErr
		}
		if exists {
			return nil, ErrAlreadyResolved
		}
		return nil, pgx.ErrNoRows
	}

	const insert = `
        INSERT INTO resolutions (disruption_id, resolved_by, resolution_description, resolution_image_url)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insert,
		disruption.ID,
		resolution.ResolvedBy,
		resolution.Description,
		resolution.ResolutionImageURL,
	).Scan(&resolution.ID, &resolution.CreatedAt); err != nil {
		return nil, err
	}
	resolution.DisruptionID = disruption.ID

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return disruption, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDisruptionRow(row rowScanner) (*domain.Disruption, error) {
	var (
		disruption     domain.Disruption
		tone           *string
		confidence     *float64
		recommendation *string
	)
	if err := row.Scan(
		&disruption.ID,
		&disruption.DisruptionID,
		&disruption.StudentID,
		&disruption.StudentName,
		&disruption.StudentEmail,
		&disruption.Category,
		&disruption.Priority,
		&disruption.Description,
		&disruption.Status,
		&tone,
		&confidence,
		&recommendation,
		&disruption.CreatedAt,
		&disruption.UpdatedAt,
		&disruption.ResolvedAt,
		&disruption.ResolvedBy,
		&disruption.IsDeleted,
	); err != nil {
		return nil, err
	}
	if tone != nil {
		annotation := domain.ToneAnnotation{Tone: *tone}
		if confidence != nil {
			annotation.Confidence = *confidence
		}
		if recommendation != nil {
			annotation.Recommendation = *recommendation
		}
		disruption.Tone = &annotation
	}
	return &disruption, nil
}

func scanDisruptions(rows pgx.Rows) ([]domain.Disruption, error) {
	var result []domain.Disruption
	for rows.Next() {
		disruption, err := scanDisruptionRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *disruption)
	}
	return result, rows.Err()
}
