package domain

import "fmt"

// Role is the closed set of roles in the system. The hierarchy is strictly
// ordered: user < tenant_admin < superadmin. All authorization checks compare
// ranks, never the raw strings.
type Role string

const (
	RoleUser        Role = "user"
	RoleTenantAdmin Role = "tenant_admin"
	RoleSuperadmin  Role = "superadmin"
)

var roleRanks = map[Role]int{
	RoleUser:        0,
	RoleTenantAdmin: 1,
	RoleSuperadmin:  2,
}

// ParseRole converts a string into a Role, rejecting anything outside the
// closed enumeration.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleRanks[r]; !ok {
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
	return r, nil
}

// Valid reports whether the role is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Rank returns the position of the role in the hierarchy. Unknown roles rank
// below every valid role.
func (r Role) Rank() int {
	if rank, ok := roleRanks[r]; ok {
		return rank
	}
	return -1
}

// AtLeast reports whether the role meets the given minimum role.
func (r Role) AtLeast(min Role) bool {
	return r.Rank() >= min.Rank()
}

func (r Role) String() string {
	return string(r)
}
