package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/tenantkit/backend/internal/domain"
)

type SocialLinkRepository interface {
	Create(ctx context.Context, link *domain.SocialLink) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.SocialLink, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]*domain.SocialLink, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
