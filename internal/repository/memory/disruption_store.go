package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campusflow/disruption-service/internal/domain"
	"github.com/campusflow/disruption-service/internal/repository"
)

type disruptionStore struct {
	store *Store
}

func (r *disruptionStore) Create(_ context.Context, disruption *domain.Disruption) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.disruptions {
		if existing.DisruptionID == disruption.DisruptionID {
			return uniqueViolation("disruptions_disruption_id_key")
		}
	}

	now := time.Now()
	disruption.ID = uuid.NewString()
	disruption.CreatedAt = now
	disruption.UpdatedAt = now
	copied := *disruption
	r.store.disruptions = append(r.store.disruptions, &copied)
	return nil
}

func (r *disruptionStore) GetByDisruptionID(_ context.Context, disruptionID string) (*domain.Disruption, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.findLocked(disruptionID)
}

func (r *disruptionStore) findLocked(disruptionID string) (*domain.Disruption, error) {
	for _, disruption := range r.store.disruptions {
		if disruption.DisruptionID == disruptionID && !disruption.IsDeleted {
			copied := *disruption
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *disruptionStore) ListByStudent(_ context.Context, studentID string) ([]domain.Disruption, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []domain.Disruption
	for _, disruption := range r.store.disruptions {
		if disruption.StudentID == studentID && !disruption.IsDeleted {
			result = append(result, *disruption)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (r *disruptionStore) ListByCategory(_ context.Context, category string) ([]domain.Disruption, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []domain.Disruption
	for _, disruption := range r.store.disruptions {
		if disruption.Category == category && !disruption.IsDeleted {
			result = append(result, *disruption)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (r *disruptionStore) SetToneAnnotation(_ context.Context, disruptionID string, annotation *domain.ToneAnnotation) error {
	if annotation == nil {
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, disruption := range r.store.disruptions {
		if disruption.DisruptionID == disruptionID && !disruption.IsDeleted {
			copied := *annotation
			disruption.Tone = &copied
			disruption.UpdatedAt = time.Now()
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *disruptionStore) Resolve(_ context.Context, disruptionID string, resolution *domain.Resolution) (*domain.Disruption, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, disruption := range r.store.disruptions {
		if disruption.DisruptionID != disruptionID || disruption.IsDeleted {
			continue
		}
		if disruption.Status == domain.DisruptionStatusResolved {
			return nil, repository.ErrAlreadyResolved
		}

		now := time.Now()
		disruption.Status = domain.DisruptionStatusResolved
		disruption.ResolvedAt = &now
		resolvedBy := resolution.ResolvedBy
		disruption.ResolvedBy = &resolvedBy
		disruption.UpdatedAt = now

		resolution.ID = uuid.NewString()
		resolution.DisruptionID = disruption.ID
		resolution.CreatedAt = now
		copiedResolution := *resolution
		r.store.resolutions = append(r.store.resolutions, &copiedResolution)

		copied := *disruption
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func sortNewestFirst(disruptions []domain.Disruption) {
	sort.SliceStable(disruptions, func(i, j int) bool {
		return disruptions[i].CreatedAt.After(disruptions[j].CreatedAt)
	})
}
