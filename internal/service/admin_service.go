package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/campusflow/disruption-service/internal/auth"
	"github.com/campusflow/disruption-service/internal/domain"
	"github.com/campusflow/disruption-service/internal/repository"
	apperrors "github.com/campusflow/disruption-service/pkg/util"
)

// AdminService handles admin enrollment via department codes.
type AdminService struct {
	users       repository.UserRepository
	codes       repository.AdminCodeRepository
	departments repository.DepartmentRepository
	audit       repository.AuditLogRepository
	logger      *zap.Logger
}

// AdminDependencies bundles collaborators for admin enrollment.
type AdminDependencies struct {
	UserRepo       repository.UserRepository
	AdminCodeRepo  repository.AdminCodeRepository
	DepartmentRepo repository.DepartmentRepository
	AuditRepo      repository.AuditLogRepository
	Logger         *zap.Logger
}

// NewAdminService builds the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	return &AdminService{
		users:       deps.UserRepo,
		codes:       deps.AdminCodeRepo,
		departments: deps.DepartmentRepo,
		audit:       deps.AuditRepo,
		logger:      deps.Logger,
	}
}

// RedeemCode elevates the requester to administrator for a department when
// the presented code matches an active, unexpired enrollment code.
func (s *AdminService) RedeemCode(ctx context.Context, requester *domain.User, departmentID, code string) (*domain.User, error) {
	if requester == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if strings.TrimSpace(departmentID) == "" || strings.TrimSpace(code) == "" {
		return nil, apperrors.NewValidationError("department and code required", nil)
	}

	if _, err := s.departments.GetByID(ctx, departmentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("department", map[string]any{"department": departmentID})
		}
		return nil, err
	}

	candidates, err := s.codes.ListActiveByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	matched := false
	for i := range candidates {
		if !candidates[i].Redeemable(now) {
			continue
		}
		if auth.CompareCode(candidates[i].CodeHash, code) == nil {
			matched = true
			break
		}
	}
	if !matched {
		return nil, apperrors.NewForbidden("invalid admin code")
	}

	dept := departmentID
	if err := s.users.UpdateRole(ctx, requester.ID, domain.UserRoleAdmin, &dept); err != nil {
		return nil, err
	}

	elevated := *requester
	elevated.Role = domain.UserRoleAdmin
	elevated.AdminDepartment = &dept

	if s.audit != nil {
		actorID := requester.ID
		entry := &domain.AuditLog{
			ActorID:     &actorID,
			Action:      domain.AuditActionAdminCodeRedeemed,
			TargetTable: "users",
			TargetID:    &actorID,
			Meta:        map[string]any{"department": departmentID},
		}
		if err := s.audit.Create(ctx, entry); err != nil {
			s.logger.Warn("failed to write audit entry", zap.Error(err))
		}
	}
	return &elevated, nil
}
