package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tenantkit/backend/internal/handler/middleware"
	"github.com/tenantkit/backend/internal/service"
	"github.com/tenantkit/backend/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
	validate    *validator.Validator
}

func NewAuthHandler(authService *service.AuthService, validate *validator.Validator) *AuthHandler {
	return &AuthHandler{authService: authService, validate: validate}
}

// Login exchanges credentials for a token pair.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.validate.Validate(req); err != nil {
		return err
	}

	resp, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, resp)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh rotates a refresh token into a fresh pair.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.validate.Validate(req); err != nil {
		return err
	}

	tokens, err := h.authService.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, tokens)
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout revokes the caller's tokens for their remaining lifetimes.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req logoutRequest
	_ = c.BodyParser(&req) // body is optional

	accessToken := middleware.TokenFromCtx(c)
	if err := h.authService.Logout(c.UserContext(), accessToken, req.RefreshToken); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "logged out"})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, middleware.UserFromCtx(c))
}

// Session reports the caller's resolved identity and effective tenant, or
// an anonymous marker when no valid token was presented.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	user := middleware.UserFromCtx(c)
	if user == nil {
		return respond(c, fiber.StatusOK, fiber.Map{"authenticated": false})
	}

	data := fiber.Map{
		"authenticated": true,
		"user":          user,
	}
	if scope := middleware.ScopeFromCtx(c); scope != nil {
		if tenantID, err := scope.TenantID(); err == nil {
			data["tenant_id"] = tenantID
		}
	}
	return respond(c, fiber.StatusOK, data)
}
