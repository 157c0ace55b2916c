package domain

import (
	"time"

	"github.com/google/uuid"
)

// User belongs to exactly one tenant, except superadmins, which have no
// tenant at all. Email is unique per tenant, not globally.
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	TenantID     *uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Email        string     `json:"email" db:"email"`
	Name         string     `json:"name" db:"name"`
	Role         Role       `json:"role" db:"role"`
	PasswordHash string     `json:"-" db:"password_hash"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Validate checks the role/tenant invariant: a superadmin never has a tenant,
// everyone else always does.
func (u *User) Validate() error {
	if !u.Role.Valid() {
		return ErrValidation
	}
	if u.Role == RoleSuperadmin && u.TenantID != nil {
		return ErrValidation
	}
	if u.Role != RoleSuperadmin && u.TenantID == nil {
		return ErrValidation
	}
	return nil
}
