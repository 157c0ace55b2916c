package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tenantkit/backend/internal/handler/middleware"
	"github.com/tenantkit/backend/internal/service"
)

type SocialLinkHandler struct {
	socialService *service.SocialLinkService
}

func NewSocialLinkHandler(socialService *service.SocialLinkService) *SocialLinkHandler {
	return &SocialLinkHandler{socialService: socialService}
}

func (h *SocialLinkHandler) Create(c *fiber.Ctx) error {
	var req service.CreateSocialLinkRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	link, err := h.socialService.Create(c.UserContext(), middleware.ScopeFromCtx(c), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, link)
}

func (h *SocialLinkHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	link, err := h.socialService.Get(c.UserContext(), middleware.ScopeFromCtx(c), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, link)
}

func (h *SocialLinkHandler) List(c *fiber.Ctx) error {
	links, err := h.socialService.List(c.UserContext(), middleware.ScopeFromCtx(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, links)
}

func (h *SocialLinkHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.socialService.Delete(c.UserContext(), middleware.ScopeFromCtx(c), id); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "social link deleted"})
}
