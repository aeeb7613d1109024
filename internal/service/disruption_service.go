package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/campusflow/disruption-service/internal/domain"
	"github.com/campusflow/disruption-service/internal/events"
	"github.com/campusflow/disruption-service/internal/repository"
	apperrors "github.com/campusflow/disruption-service/pkg/util"
)

// DisruptionService enforces the disruption state machine and the
// authorization rules around it.
type DisruptionService struct {
	disruptions repository.DisruptionRepository
	resolutions repository.ResolutionRepository
	images      repository.DisruptionImageRepository
	departments repository.DepartmentRepository
	audit       repository.AuditLogRepository
	directory   *DirectoryService
	tone        *ToneService
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// DisruptionDependencies bundles collaborators for the lifecycle service.
type DisruptionDependencies struct {
	DisruptionRepo repository.DisruptionRepository
	ResolutionRepo repository.ResolutionRepository
	ImageRepo      repository.DisruptionImageRepository
	DepartmentRepo repository.DepartmentRepository
	AuditRepo      repository.AuditLogRepository
	Directory      *DirectoryService
	Tone           *ToneService
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// DisruptionCreateInput describes the create payload. The owning student is
// always the authenticated requester, never part of the input.
type DisruptionCreateInput struct {
	DisruptionID string
	StudentName  string
	StudentEmail string
	Category     string
	Priority     domain.DisruptionPriority
	Description  string
	ImageURLs    []string
}

// NewDisruptionService constructs the service.
func NewDisruptionService(deps DisruptionDependencies) *DisruptionService {
	return &DisruptionService{
		disruptions: deps.DisruptionRepo,
		resolutions: deps.ResolutionRepo,
		images:      deps.ImageRepo,
		departments: deps.DepartmentRepo,
		audit:       deps.AuditRepo,
		directory:   deps.Directory,
		tone:        deps.Tone,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
	}
}

// Create files a new disruption owned by the requester. Tone annotation is
// best-effort: its failure never fails the create.
func (s *DisruptionService) Create(ctx context.Context, requester *domain.User, input DisruptionCreateInput) (*domain.Disruption, error) {
	if requester == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	missing := map[string]any{}
	if strings.TrimSpace(input.DisruptionID) == "" {
		missing["disruptionId"] = "required"
	}
	if strings.TrimSpace(input.StudentName) == "" {
		missing["studentName"] = "required"
	}
	if strings.TrimSpace(input.StudentEmail) == "" {
		missing["studentEmail"] = "required"
	}
	if strings.TrimSpace(input.Category) == "" {
		missing["category"] = "required"
	}
	if input.Priority == "" {
		missing["priority"] = "required"
	}
	if strings.TrimSpace(input.Description) == "" {
		missing["description"] = "required"
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", missing)
	}
	if !domain.ValidPriority(input.Priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{
			"priority": input.Priority,
			"allowed":  []domain.DisruptionPriority{domain.DisruptionPriorityLow, domain.DisruptionPriorityMedium, domain.DisruptionPriorityHigh},
		})
	}
	if _, err := s.departments.GetByID(ctx, input.Category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": input.Category})
		}
		return nil, err
	}

	if _, err := s.disruptions.GetByDisruptionID(ctx, input.DisruptionID); err == nil {
		return nil, apperrors.NewConflict("disruption id already exists", map[string]any{"disruptionId": input.DisruptionID})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	disruption := &domain.Disruption{
		DisruptionID: input.DisruptionID,
		StudentID:    requester.ID,
		StudentName:  strings.TrimSpace(input.StudentName),
		StudentEmail: strings.TrimSpace(input.StudentEmail),
		Category:     input.Category,
		Priority:     input.Priority,
		Description:  strings.TrimSpace(input.Description),
		Status:       domain.DisruptionStatusPending,
	}
	if err := s.disruptions.Create(ctx, disruption); err != nil {
		// Concurrent create with the same business id loses the race here.
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("disruption id already exists", map[string]any{"disruptionId": input.DisruptionID})
		}
		return nil, err
	}

	for _, url := range input.ImageURLs {
		image := &domain.DisruptionImage{DisruptionID: disruption.ID, URL: url}
		if err := s.images.Create(ctx, image); err != nil {
			s.logger.Warn("failed to attach disruption image", zap.String("disruption_id", disruption.DisruptionID), zap.Error(err))
		}
	}

	if annotation := s.tone.Annotate(ctx, disruption.Description); annotation != nil {
		if err := s.disruptions.SetToneAnnotation(ctx, disruption.DisruptionID, annotation); err != nil {
			s.logger.Warn("failed to persist tone annotation", zap.String("disruption_id", disruption.DisruptionID), zap.Error(err))
		} else {
			disruption.Tone = annotation
			s.publishEvent(ctx, events.Event{
				Type:         events.EventToneAnnotated,
				DisruptionID: disruption.DisruptionID,
				StudentID:    disruption.StudentID,
				ActorID:      requester.ID,
				Payload:      events.ToneAnnotatedPayload{Tone: annotation.Tone, Confidence: annotation.Confidence},
			})
		}
	}

	s.recordAudit(ctx, requester.ID, domain.AuditActionDisruptionCreated, disruption.ID, map[string]any{
		"disruption_id": disruption.DisruptionID,
		"category":      disruption.Category,
		"priority":      disruption.Priority,
	})
	s.publishEvent(ctx, events.Event{
		Type:         events.EventDisruptionCreated,
		DisruptionID: disruption.DisruptionID,
		StudentID:    disruption.StudentID,
		ActorID:      requester.ID,
		Payload: events.DisruptionCreatedPayload{
			Category: disruption.Category,
			Priority: disruption.Priority,
		},
	})
	return disruption, nil
}

// GetByDisruptionID fetches a disruption with its evidence images. The read
// carries no authorization check; callers decide what to expose.
func (s *DisruptionService) GetByDisruptionID(ctx context.Context, disruptionID string) (*domain.Disruption, []domain.DisruptionImage, error) {
	disruption, err := s.disruptions.GetByDisruptionID(ctx, disruptionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("disruption", map[string]any{"disruptionId": disruptionID})
		}
		return nil, nil, err
	}
	images, err := s.images.ListByDisruption(ctx, disruption.ID)
	if err != nil {
		return nil, nil, err
	}
	return disruption, images, nil
}

// ListByStudent returns a student's disruptions, newest first. The requester
// must be the target (matched by local id or auth uid) or an admin.
func (s *DisruptionService) ListByStudent(ctx context.Context, requester *domain.User, requesterIsAdmin bool, studentRef string) ([]domain.Disruption, error) {
	if requester == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	target := requester
	if !s.refersTo(requester, studentRef) {
		if !requesterIsAdmin {
			return nil, apperrors.NewForbidden("students may only list their own disruptions")
		}
		resolved, err := s.directory.ResolveStudentRef(ctx, studentRef)
		if err != nil {
			return nil, err
		}
		target = resolved
	}

	return s.disruptions.ListByStudent(ctx, target.ID)
}

// ListByCategory returns all disruptions in a category, newest first.
// Admin only.
func (s *DisruptionService) ListByCategory(ctx context.Context, requesterIsAdmin bool, category string) ([]domain.Disruption, error) {
	if !requesterIsAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	return s.disruptions.ListByCategory(ctx, category)
}

// Resolve transitions a disruption to resolved and appends the resolution
// record atomically. Resolving an already-resolved disruption is rejected
// with Conflict so the history of the first resolution is never discarded.
func (s *DisruptionService) Resolve(ctx context.Context, requester *domain.User, requesterIsAdmin bool, disruptionID, description string, imageRef *string) (*domain.Disruption, error) {
	if requester == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !requesterIsAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.NewValidationError("resolutionDescription required", nil)
	}

	resolution := &domain.Resolution{
		ResolvedBy:         requester.ID,
		Description:        strings.TrimSpace(description),
		ResolutionImageURL: imageRef,
	}
	disruption, err := s.disruptions.Resolve(ctx, disruptionID, resolution)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, apperrors.NewNotFound("disruption", map[string]any{"disruptionId": disruptionID})
		case errors.Is(err, repository.ErrAlreadyResolved):
			return nil, apperrors.NewConflict("disruption already resolved", map[string]any{"disruptionId": disruptionID})
		}
		return nil, err
	}

	s.recordAudit(ctx, requester.ID, domain.AuditActionDisruptionResolved, disruption.ID, map[string]any{
		"disruption_id": disruption.DisruptionID,
		"resolution_id": resolution.ID,
	})
	s.publishEvent(ctx, events.Event{
		Type:         events.EventDisruptionResolved,
		DisruptionID: disruption.DisruptionID,
		StudentID:    disruption.StudentID,
		ActorID:      requester.ID,
		Payload: events.DisruptionResolvedPayload{
			ResolvedBy:  requester.ID,
			Description: resolution.Description,
		},
	})
	return disruption, nil
}

// ListResolutions returns the append-only resolution history. Admin only.
func (s *DisruptionService) ListResolutions(ctx context.Context, requesterIsAdmin bool, disruptionID string) ([]domain.Resolution, error) {
	if !requesterIsAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	disruption, err := s.disruptions.GetByDisruptionID(ctx, disruptionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("disruption", map[string]any{"disruptionId": disruptionID})
		}
		return nil, err
	}
	return s.resolutions.ListByDisruption(ctx, disruption.ID)
}

// ListCategories exposes the fixed department set.
func (s *DisruptionService) ListCategories(ctx context.Context) ([]domain.Department, error) {
	return s.departments.List(ctx)
}

func (s *DisruptionService) refersTo(user *domain.User, ref string) bool {
	if user == nil {
		return false
	}
	if ref == user.ID {
		return true
	}
	return user.AuthUID != nil && ref == *user.AuthUID
}

func (s *DisruptionService) recordAudit(ctx context.Context, actorID string, action domain.AuditAction, targetID string, meta map[string]any) {
	if s.audit == nil {
		return
	}
	entry := &domain.AuditLog{
		ActorID:     &actorID,
		Action:      action,
		TargetTable: "disruptions",
		TargetID:    &targetID,
		Meta:        meta,
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to write audit entry", zap.String("action", string(action)), zap.Error(err))
	}
}

func (s *DisruptionService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
