package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/tenantkit/backend/internal/domain"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*domain.Document, int, error)
	ListByUser(ctx context.Context, tenantID, userID uuid.UUID, limit, offset int) ([]*domain.Document, int, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// TransitionStatus applies a compare-and-set status change: the update
	// only happens when the document currently has status from. A document
	// in a different status yields domain.ErrInvalidTransition; a missing
	// document yields domain.ErrNotFound. errDetail is stored on transitions
	// into error and cleared otherwise.
	TransitionStatus(ctx context.Context, tenantID, id uuid.UUID, from, to domain.DocumentStatus, errDetail *string) error
}
