package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tenantkit/backend/internal/domain"
	"github.com/tenantkit/backend/internal/repository"
)

const userColumns = `id, tenant_id, email, name, role, password_hash, last_login_at, created_at, updated_at`

type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, tenant_id, email, name, role, password_hash, last_login_at, created_at, updated_at)
		VALUES (:id, :tenant_id, :email, :name, :role, :password_hash, :last_login_at, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, ext(ctx, r.db), query, user); err != nil {
		return translate(err, "failed to create user")
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user domain.User
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &user, query, id); err != nil {
		return nil, translate(err, "failed to get user by id")
	}
	return &user, nil
}

// GetByEmail resolves a login email. Email is only unique per tenant, so
// several rows can match; the superadmin row (no tenant) wins if present,
// otherwise the newest match. A tenant user created later must never shadow
// a superadmin account.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
		ORDER BY (tenant_id IS NULL) DESC, created_at DESC
		LIMIT 1`

	var user domain.User
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &user, query, email); err != nil {
		return nil, translate(err, "failed to get user by email")
	}
	return &user, nil
}

func (r *userRepository) GetByIDInTenant(ctx context.Context, tenantID, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND tenant_id = $2`

	var user domain.User
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &user, query, id, tenantID); err != nil {
		return nil, translate(err, "failed to get user by id")
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*domain.User, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM users WHERE tenant_id = $1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &total, countQuery, tenantID); err != nil {
		return nil, 0, translate(err, "failed to count users")
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	users := []*domain.User{}
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &users, query, tenantID, limit, offset); err != nil {
		return nil, 0, translate(err, "failed to list users")
	}
	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET email = :email,
			name = :name,
			role = :role,
			password_hash = :password_hash,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := sqlx.NamedExecContext(ctx, ext(ctx, r.db), query, user)
	if err != nil {
		return translate(err, "failed to update user")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return translate(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) DeleteInTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := ext(ctx, r.db).ExecContext(ctx,
		`DELETE FROM users WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return translate(err, "failed to delete user")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return translate(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET last_login_at = $1 WHERE id = $2`
	if _, err := ext(ctx, r.db).ExecContext(ctx, query, time.Now().UTC(), id); err != nil {
		return translate(err, "failed to update last login")
	}
	return nil
}
