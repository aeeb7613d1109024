// Package memory provides in-memory implementations of the repository
// interfaces. It mirrors the Postgres behavior tests depend on: pgx.ErrNoRows
// for missing rows and unique-violation errors for duplicate inserts.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campusflow/disruption-service/internal/domain"
	"github.com/campusflow/disruption-service/internal/repository"
)

// Store holds all tables behind one mutex.
type Store struct {
	mu            sync.Mutex
	users         []*domain.User
	disruptions   []*domain.Disruption
	resolutions   []*domain.Resolution
	images        []*domain.DisruptionImage
	departments   []domain.Department
	notifications []*domain.Notification
	adminCodes    []domain.AdminCode
	auditLogs     []*domain.AuditLog
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// SeedDepartments installs the category set.
func (s *Store) SeedDepartments(departments ...domain.Department) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments = append(s.departments, departments...)
}

// SeedAdminCode installs an enrollment code.
func (s *Store) SeedAdminCode(code domain.AdminCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now()
	}
	s.adminCodes = append(s.adminCodes, code)
}

// AuditEntries returns a copy of the audit trail.
func (s *Store) AuditEntries() []domain.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditLog, 0, len(s.auditLogs))
	for _, entry := range s.auditLogs {
		out = append(out, *entry)
	}
	return out
}

// Resolutions returns a copy of all resolution records.
func (s *Store) Resolutions() []domain.Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Resolution, 0, len(s.resolutions))
	for _, resolution := range s.resolutions {
		out = append(out, *resolution)
	}
	return out
}

// Users returns the user repository view.
func (s *Store) Users() repository.UserRepository { return &userStore{s} }

// Disruptions returns the disruption repository view.
func (s *Store) Disruptions() repository.DisruptionRepository { return &disruptionStore{s} }

// ResolutionRepo returns the resolution repository view.
func (s *Store) ResolutionRepo() repository.ResolutionRepository { return &resolutionStore{s} }

// Images returns the image repository view.
func (s *Store) Images() repository.DisruptionImageRepository { return &imageStore{s} }

// Departments returns the department repository view.
func (s *Store) Departments() repository.DepartmentRepository { return &departmentStore{s} }

// Audit returns the audit repository view.
func (s *Store) Audit() repository.AuditLogRepository { return &auditStore{s} }

// Notifications returns the notification repository view.
func (s *Store) Notifications() repository.NotificationRepository { return &notificationStore{s} }

// AdminCodes returns the admin code repository view.
func (s *Store) AdminCodes() repository.AdminCodeRepository { return &adminCodeStore{s} }

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}
