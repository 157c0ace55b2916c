package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tenantkit/backend/internal/domain"
	"github.com/tenantkit/backend/internal/handler/middleware"
	"github.com/tenantkit/backend/internal/service"
)

type DocumentHandler struct {
	documentService *service.DocumentService
}

func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterUploadRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	doc, err := h.documentService.Register(c.UserContext(), middleware.ScopeFromCtx(c), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, doc)
}

func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	doc, err := h.documentService.Get(c.UserContext(), middleware.ScopeFromCtx(c), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, doc)
}

func (h *DocumentHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	docs, total, err := h.documentService.List(c.UserContext(), middleware.ScopeFromCtx(c), limit, offset)
	if err != nil {
		return err
	}
	return respondList(c, docs, total, limit, offset)
}

func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.documentService.Delete(c.UserContext(), middleware.ScopeFromCtx(c), id); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "document deleted"})
}

func (h *DocumentHandler) MarkProcessing(c *fiber.Ctx) error {
	return h.transition(c, h.documentService.MarkProcessing)
}

func (h *DocumentHandler) MarkProcessed(c *fiber.Ctx) error {
	return h.transition(c, h.documentService.MarkProcessed)
}

func (h *DocumentHandler) Reprocess(c *fiber.Ctx) error {
	return h.transition(c, h.documentService.Reprocess)
}

func (h *DocumentHandler) MarkError(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req service.MarkErrorRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	doc, err := h.documentService.MarkError(c.UserContext(), middleware.ScopeFromCtx(c), id, req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, doc)
}

func (h *DocumentHandler) transition(
	c *fiber.Ctx,
	fn func(context.Context, *domain.Scope, uuid.UUID) (*domain.Document, error),
) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	doc, err := fn(c.UserContext(), middleware.ScopeFromCtx(c), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, doc)
}
