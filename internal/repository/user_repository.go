package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusflow/disruption-service/internal/domain"
)

// UserRepository defines persistence access for directory records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByAuthUID(ctx context.Context, authUID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	LinkAuthUID(ctx context.Context, userID, authUID string) error
	UpdateRole(ctx context.Context, userID string, role domain.UserRole, adminDepartment *string) error
	TouchLastLogin(ctx context.Context, userID string) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation. Uniqueness of
// auth_uid and email is enforced by constraints; duplicate inserts surface as
// pgconn unique-violation errors.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, auth_uid, email, role, admin_department, name, is_active, created_at, last_login`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (auth_uid, email, role, admin_department, name, is_active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		user.AuthUID,
		user.Email,
		user.Role,
		user.AdminDepartment,
		user.Name,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByAuthUID(ctx context.Context, authUID string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE auth_uid=$1`, authUID)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.AuthUID,
		&user.Email,
		&user.Role,
		&user.AdminDepartment,
		&user.Name,
		&user.IsActive,
		&user.CreatedAt,
		&user.LastLogin,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) LinkAuthUID(ctx context.Context, userID, authUID string) error {
	const query = `UPDATE users SET auth_uid=$1 WHERE id=$2 AND auth_uid IS NULL`
	cmd, err := r.pool.Exec(ctx, query, authUID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdateRole(ctx context.Context, userID string, role domain.UserRole, adminDepartment *string) error {
	const query = `UPDATE users SET role=$1, admin_department=$2 WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, role, adminDepartment, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, userID string) error {
	const query = `UPDATE users SET last_login=NOW() WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, userID)
	return err
}
