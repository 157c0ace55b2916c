package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Scope is the tenant-isolation context for one request. It is built exactly
// once per request, from the authenticated user and the optional X-Tenant-ID
// override, and every tenant-owned store call derives its tenant filter from
// it. A non-superadmin can never obtain a scope pointing at a foreign tenant:
// NewScope rejects the attempt instead of silently ignoring the header.
type Scope struct {
	User     *User
	override *uuid.UUID
}

// NewScope builds the scope for a request. override is the parsed X-Tenant-ID
// header, nil when absent. For superadmins the override selects the tenant
// context to impersonate; for everyone else an override naming a foreign
// tenant is rejected with ErrTenantAccess.
func NewScope(user *User, override *uuid.UUID) (Scope, error) {
	if user == nil {
		return Scope{}, ErrUserNotFound
	}

	if override != nil && user.Role != RoleSuperadmin {
		if user.TenantID == nil || *user.TenantID != *override {
			return Scope{}, fmt.Errorf("%w: tenant override not permitted", ErrTenantAccess)
		}
		// Redundant override naming the caller's own tenant is harmless.
		override = nil
	}

	return Scope{User: user, override: override}, nil
}

// TenantID resolves the effective tenant for tenant-owned entity access.
// Superadmins must have supplied an override; everyone else always acts on
// their own tenant.
func (s Scope) TenantID() (uuid.UUID, error) {
	if s.User.Role == RoleSuperadmin {
		if s.override == nil {
			return uuid.Nil, fmt.Errorf("%w: superadmin requests require an explicit tenant context", ErrTenantAccess)
		}
		return *s.override, nil
	}
	if s.User.TenantID == nil {
		return uuid.Nil, ErrTenantAccess
	}
	return *s.User.TenantID, nil
}

// IsSuperadmin reports whether the scope belongs to a superadmin.
func (s Scope) IsSuperadmin() bool {
	return s.User.Role == RoleSuperadmin
}

// CanReadTenantWide reports whether the caller may read entities uploaded by
// other users of the effective tenant. Plain users are restricted to their
// own rows on per-user entities.
func (s Scope) CanReadTenantWide() bool {
	return s.User.Role.AtLeast(RoleTenantAdmin)
}
