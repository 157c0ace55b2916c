package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tenantkit/backend/internal/domain"
	"github.com/tenantkit/backend/internal/repository"
)

type socialLinkRepository struct {
	db *sqlx.DB
}

// NewSocialLinkRepository creates a new PostgreSQL social link repository
func NewSocialLinkRepository(db *sqlx.DB) repository.SocialLinkRepository {
	return &socialLinkRepository{db: db}
}

func (r *socialLinkRepository) Create(ctx context.Context, link *domain.SocialLink) error {
	now := time.Now().UTC()
	link.CreatedAt = now
	link.UpdatedAt = now

	query := `
		INSERT INTO social_links (id, tenant_id, url, platform, created_at, updated_at)
		VALUES (:id, :tenant_id, :url, :platform, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, ext(ctx, r.db), query, link); err != nil {
		return translate(err, "failed to create social link")
	}
	return nil
}

func (r *socialLinkRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.SocialLink, error) {
	query := `
		SELECT id, tenant_id, url, platform, created_at, updated_at
		FROM social_links
		WHERE id = $1 AND tenant_id = $2`

	var link domain.SocialLink
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &link, query, id, tenantID); err != nil {
		return nil, translate(err, "failed to get social link by id")
	}
	return &link, nil
}

func (r *socialLinkRepository) List(ctx context.Context, tenantID uuid.UUID) ([]*domain.SocialLink, error) {
	query := `
		SELECT id, tenant_id, url, platform, created_at, updated_at
		FROM social_links
		WHERE tenant_id = $1
		ORDER BY created_at DESC`

	links := []*domain.SocialLink{}
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &links, query, tenantID); err != nil {
		return nil, translate(err, "failed to list social links")
	}
	return links, nil
}

func (r *socialLinkRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := ext(ctx, r.db).ExecContext(ctx,
		`DELETE FROM social_links WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return translate(err, "failed to delete social link")
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
