package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campusflow/disruption-service/internal/domain"
	"github.com/campusflow/disruption-service/internal/repository"
	apperrors "github.com/campusflow/disruption-service/pkg/util"
)

// DirectoryService maps external identity subjects to local user records.
type DirectoryService struct {
	users repository.UserRepository
}

// NewDirectoryService builds the service.
func NewDirectoryService(users repository.UserRepository) *DirectoryService {
	return &DirectoryService{users: users}
}

// ResolveOrCreate looks up the local record for a verified identity, creating
// a student record on first sight. Lookup order: auth uid, then email; a
// record found by email gets the auth uid linked to it.
func (s *DirectoryService) ResolveOrCreate(ctx context.Context, authUID, email, name string) (*domain.User, error) {
	return s.ResolveOrCreateWithRole(ctx, authUID, email, name, domain.UserRoleStudent)
}

// ResolveOrCreateWithRole is ResolveOrCreate with an explicit role for newly
// created records.
func (s *DirectoryService) ResolveOrCreateWithRole(ctx context.Context, authUID, email, name string, defaultRole domain.UserRole) (*domain.User, error) {
	if authUID == "" {
		return nil, apperrors.NewUnauthorized("identity subject missing")
	}

	user, err := s.users.GetByAuthUID(ctx, authUID)
	if err == nil {
		_ = s.users.TouchLastLogin(ctx, user.ID)
		return user, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if email != "" {
		user, err = s.users.GetByEmail(ctx, email)
		if err == nil {
			if user.AuthUID == nil {
				if linkErr := s.users.LinkAuthUID(ctx, user.ID, authUID); linkErr != nil && !errors.Is(linkErr, pgx.ErrNoRows) {
					return nil, linkErr
				}
				uid := authUID
				user.AuthUID = &uid
			}
			_ = s.users.TouchLastLogin(ctx, user.ID)
			return user, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	if email == "" {
		email = fmt.Sprintf("%s@example.invalid", authUID)
	}
	uid := authUID
	created := &domain.User{
		AuthUID:  &uid,
		Email:    email,
		Role:     defaultRole,
		Name:     name,
		IsActive: true,
	}
	// A losing concurrent first-sight insert surfaces the store's uniqueness
	// violation, which maps to Conflict.
	if err := s.users.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// ResolveStudentRef resolves a polymorphic student reference: local user id
// first, external auth uid as fallback. Only uuid-shaped refs are tried
// against the local id column.
func (s *DirectoryService) ResolveStudentRef(ctx context.Context, ref string) (*domain.User, error) {
	if _, parseErr := uuid.Parse(ref); parseErr == nil {
		user, err := s.users.GetByID(ctx, ref)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	user, err := s.users.GetByAuthUID(ctx, ref)
	if err == nil {
		return user, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("user", map[string]any{"ref": ref})
	}
	return nil, err
}
