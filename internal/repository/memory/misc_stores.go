package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campusflow/disruption-service/internal/domain"
)

type resolutionStore struct {
	store *Store
}

func (r *resolutionStore) ListByDisruption(_ context.Context, disruptionRowID string) ([]domain.Resolution, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []domain.Resolution
	for _, resolution := range r.store.resolutions {
		if resolution.DisruptionID == disruptionRowID {
			result = append(result, *resolution)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

type imageStore struct {
	store *Store
}

func (r *imageStore) Create(_ context.Context, image *domain.DisruptionImage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	image.ID = uuid.NewString()
	image.UploadedAt = time.Now()
	copied := *image
	r.store.images = append(r.store.images, &copied)
	return nil
}

func (r *imageStore) ListByDisruption(_ context.Context, disruptionRowID string) ([]domain.DisruptionImage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []domain.DisruptionImage
	for _, image := range r.store.images {
		if image.DisruptionID == disruptionRowID {
			result = append(result, *image)
		}
	}
	return result, nil
}

type departmentStore struct {
	store *Store
}

func (r *departmentStore) GetByID(_ context.Context, id string) (*domain.Department, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, dept := range r.store.departments {
		if dept.ID == id {
			copied := dept
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *departmentStore) List(_ context.Context) ([]domain.Department, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]domain.Department, len(r.store.departments))
	copy(result, r.store.departments)
	sort.SliceStable(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type auditStore struct {
	store *Store
}

func (r *auditStore) Create(_ context.Context, entry *domain.AuditLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()
	copied := *entry
	r.store.auditLogs = append(r.store.auditLogs, &copied)
	return nil
}

type notificationStore struct {
	store *Store
}

func (r *notificationStore) Create(_ context.Context, notification *domain.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	notification.ID = uuid.NewString()
	notification.CreatedAt = time.Now()
	copied := *notification
	r.store.notifications = append(r.store.notifications, &copied)
	return nil
}

func (r *notificationStore) ListByUser(_ context.Context, userID string) ([]domain.Notification, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []domain.Notification
	for _, notification := range r.store.notifications {
		if notification.UserID == userID {
			result = append(result, *notification)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

type adminCodeStore struct {
	store *Store
}

func (r *adminCodeStore) ListActiveByDepartment(_ context.Context, departmentID string) ([]domain.AdminCode, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []domain.AdminCode
	for _, code := range r.store.adminCodes {
		if code.DepartmentID == departmentID && code.IsActive {
			result = append(result, code)
		}
	}
	return result, nil
}
