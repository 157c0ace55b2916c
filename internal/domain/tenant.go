package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is an isolated organizational unit. It is the root aggregate for
// users, documents and social links; deleting a tenant cascades to all of
// them.
type Tenant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TenantStats carries the per-tenant counters exposed on tenant reads.
type TenantStats struct {
	UserCount     int `json:"user_count" db:"user_count"`
	DocumentCount int `json:"document_count" db:"document_count"`
}
