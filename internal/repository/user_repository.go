package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/tenantkit/backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error

	// GetByID is unscoped; it exists for the authentication resolver, which
	// runs before any tenant context is established.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail is unscoped; it exists for login, where the caller has no
	// tenant context yet.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	GetByIDInTenant(ctx context.Context, tenantID, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	DeleteInTenant(ctx context.Context, tenantID, id uuid.UUID) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}
