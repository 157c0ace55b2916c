package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tenantkit/backend/internal/handler/middleware"
	"github.com/tenantkit/backend/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.userService.Create(c.UserContext(), middleware.ScopeFromCtx(c), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, user)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.Get(c.UserContext(), middleware.ScopeFromCtx(c), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, user)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	users, total, err := h.userService.List(c.UserContext(), middleware.ScopeFromCtx(c), limit, offset)
	if err != nil {
		return err
	}
	return respondList(c, users, total, limit, offset)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req service.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.userService.Update(c.UserContext(), middleware.ScopeFromCtx(c), id, req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.UserContext(), middleware.ScopeFromCtx(c), id); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "user deleted"})
}
