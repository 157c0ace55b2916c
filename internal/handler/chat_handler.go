package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tenantkit/backend/internal/handler/middleware"
	"github.com/tenantkit/backend/internal/service"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) CreateSession(c *fiber.Ctx) error {
	var req service.CreateSessionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	session, err := h.chatService.CreateSession(c.UserContext(), middleware.UserFromCtx(c), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, session)
}

func (h *ChatHandler) GetSession(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	session, err := h.chatService.GetSession(c.UserContext(), middleware.UserFromCtx(c), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, session)
}

func (h *ChatHandler) ListSessions(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	sessions, total, err := h.chatService.ListSessions(c.UserContext(), middleware.UserFromCtx(c), limit, offset)
	if err != nil {
		return err
	}
	return respondList(c, sessions, total, limit, offset)
}

func (h *ChatHandler) DeleteSession(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.chatService.DeleteSession(c.UserContext(), middleware.UserFromCtx(c), id); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "chat session deleted"})
}

func (h *ChatHandler) AppendMessage(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req service.AppendMessageRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	msg, err := h.chatService.AppendMessage(c.UserContext(), middleware.UserFromCtx(c), id, req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, msg)
}

func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	limit, offset := parsePagination(c)
	messages, total, err := h.chatService.ListMessages(c.UserContext(), middleware.UserFromCtx(c), id, limit, offset)
	if err != nil {
		return err
	}
	return respondList(c, messages, total, limit, offset)
}
