package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tenantkit/backend/internal/domain"
	"github.com/tenantkit/backend/internal/repository"
)

type tenantRepository struct {
	db *sqlx.DB
}

// NewTenantRepository creates a new PostgreSQL tenant repository
func NewTenantRepository(db *sqlx.DB) repository.TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	now := time.Now().UTC()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now

	query := `
		INSERT INTO tenants (id, name, slug, created_at, updated_at)
		VALUES (:id, :name, :slug, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, ext(ctx, r.db), query, tenant); err != nil {
		return translate(err, "failed to create tenant")
	}
	return nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM tenants
		WHERE id = $1`

	var tenant domain.Tenant
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &tenant, query, id); err != nil {
		return nil, translate(err, "failed to get tenant by id")
	}
	return &tenant, nil
}

func (r *tenantRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM tenants
		WHERE slug = $1`

	var tenant domain.Tenant
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &tenant, query, slug); err != nil {
		return nil, translate(err, "failed to get tenant by slug")
	}
	return &tenant, nil
}

func (r *tenantRepository) List(ctx context.Context, limit, offset int) ([]*domain.Tenant, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM tenants`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &total, countQuery); err != nil {
		return nil, 0, translate(err, "failed to count tenants")
	}

	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM tenants
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	tenants := []*domain.Tenant{}
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &tenants, query, limit, offset); err != nil {
		return nil, 0, translate(err, "failed to list tenants")
	}
	return tenants, total, nil
}

func (r *tenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	tenant.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tenants
		SET name = :name,
			slug = :slug,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := sqlx.NamedExecContext(ctx, ext(ctx, r.db), query, tenant)
	if err != nil {
		return translate(err, "failed to update tenant")
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

// Delete removes a tenant; foreign keys cascade to its users, documents and
// social links (and transitively to chat sessions and messages).
func (r *tenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := ext(ctx, r.db).ExecContext(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return translate(err, "failed to delete tenant")
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

func (r *tenantRepository) Stats(ctx context.Context, id uuid.UUID) (*domain.TenantStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE tenant_id = $1) AS user_count,
			(SELECT COUNT(*) FROM documents WHERE tenant_id = $1) AS document_count`

	var stats domain.TenantStats
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &stats, query, id); err != nil {
		return nil, translate(err, "failed to get tenant stats")
	}
	return &stats, nil
}
