package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campusflow/disruption-service/internal/domain"
)

type userStore struct {
	store *Store
}

func (r *userStore) Create(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return uniqueViolation("users_email_key")
		}
		if existing.AuthUID != nil && user.AuthUID != nil && *existing.AuthUID == *user.AuthUID {
			return uniqueViolation("users_auth_uid_key")
		}
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	copied := *user
	r.store.users = append(r.store.users, &copied)
	return nil
}

func (r *userStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *userStore) GetByAuthUID(_ context.Context, authUID string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.AuthUID != nil && *user.AuthUID == authUID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *userStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *userStore) LinkAuthUID(_ context.Context, userID, authUID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.ID == userID && user.AuthUID == nil {
			uid := authUID
			user.AuthUID = &uid
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *userStore) UpdateRole(_ context.Context, userID string, role domain.UserRole, adminDepartment *string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.ID == userID {
			user.Role = role
			user.AdminDepartment = adminDepartment
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *userStore) TouchLastLogin(_ context.Context, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.ID == userID {
			now := time.Now()
			user.LastLogin = &now
			return nil
		}
	}
	return nil
}
