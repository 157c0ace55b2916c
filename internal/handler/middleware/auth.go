package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tenantkit/backend/internal/domain"
	"github.com/tenantkit/backend/internal/service"
)

// Locals keys set by the authentication middleware.
const (
	LocalsUser  = "auth_user"
	LocalsScope = "auth_scope"
	LocalsToken = "auth_token"
)

// HeaderTenantOverride lets superadmins act inside a specific tenant.
const HeaderTenantOverride = "X-Tenant-ID"

// RequireAuth resolves the bearer token to a user through the auth service,
// builds the request's tenant scope (honoring the superadmin tenant
// override) and stores both in locals. Every protected route goes through
// here; nothing downstream touches tokens.
func RequireAuth(authService *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return domain.ErrInvalidToken
		}

		user, err := authService.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}

		scope, err := buildScope(c, user)
		if err != nil {
			return err
		}

		c.Locals(LocalsUser, user)
		c.Locals(LocalsScope, scope)
		c.Locals(LocalsToken, token)
		return c.Next()
	}
}

// OptionalAuth resolves the user when a valid token is present and stays
// silent otherwise. Used by endpoints that serve anonymous callers too.
func OptionalAuth(authService *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if user := authService.AuthenticateOptional(c.UserContext(), token); user != nil {
			if scope, err := buildScope(c, user); err == nil {
				c.Locals(LocalsUser, user)
				c.Locals(LocalsScope, scope)
				c.Locals(LocalsToken, token)
			}
		}
		return c.Next()
	}
}

// RequireRole gates a route on the role hierarchy: any caller ranked at or
// above min passes.
func RequireRole(min domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := UserFromCtx(c)
		if user == nil {
			return domain.ErrInvalidToken
		}
		if !user.Role.AtLeast(min) {
			return domain.ErrInsufficientRole
		}
		return c.Next()
	}
}

// UserFromCtx returns the authenticated user, or nil on unauthenticated
// requests.
func UserFromCtx(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(LocalsUser).(*domain.User)
	return user
}

// ScopeFromCtx returns the request's tenant scope, or nil on
// unauthenticated requests.
func ScopeFromCtx(c *fiber.Ctx) *domain.Scope {
	scope, _ := c.Locals(LocalsScope).(*domain.Scope)
	return scope
}

// TokenFromCtx returns the raw bearer token the request authenticated with.
func TokenFromCtx(c *fiber.Ctx) string {
	token, _ := c.Locals(LocalsToken).(string)
	return token
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func buildScope(c *fiber.Ctx, user *domain.User) (*domain.Scope, error) {
	var override *uuid.UUID
	if raw := c.Get(HeaderTenantOverride); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, domain.ErrTenantAccess
		}
		override = &id
	}
	scope, err := domain.NewScope(user, override)
	if err != nil {
		return nil, err
	}
	return &scope, nil
}
