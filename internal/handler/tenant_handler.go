package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tenantkit/backend/internal/service"
)

type TenantHandler struct {
	tenantService *service.TenantService
}

func NewTenantHandler(tenantService *service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var req service.CreateTenantRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	tenant, admin, err := h.tenantService.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, fiber.Map{
		"tenant": tenant,
		"admin":  admin,
	})
}

func (h *TenantHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.tenantService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, detail)
}

func (h *TenantHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	tenants, total, err := h.tenantService.List(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return respondList(c, tenants, total, limit, offset)
}

func (h *TenantHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req service.UpdateTenantRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	tenant, err := h.tenantService.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, tenant)
}

func (h *TenantHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.tenantService.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "tenant deleted"})
}
