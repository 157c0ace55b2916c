package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tenantkit/backend/internal/domain"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Meta carries pagination counters for list endpoints.
type Meta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type ListData struct {
	Items interface{} `json:"items"`
	Meta  Meta        `json:"meta"`
}

func respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(Response{Success: true, Data: data})
}

func respondList(c *fiber.Ctx, items interface{}, total, limit, offset int) error {
	return respond(c, fiber.StatusOK, ListData{
		Items: items,
		Meta:  Meta{Total: total, Limit: limit, Offset: offset},
	})
}

// NewErrorHandler builds the central fiber error handler. Handlers return
// plain errors; this is the only place errors become HTTP responses. An
// error outside the domain taxonomy is a 500 and gets its message replaced
// so internals never leak to clients.
func NewErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(Response{
				Success: false,
				Error:   &ErrorBody{Code: "HTTP_ERROR", Message: fiberErr.Message},
			})
		}

		status := domain.HTTPStatus(err)
		message := err.Error()
		if status == fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
			message = "internal server error"
		}

		return c.Status(status).JSON(Response{
			Success: false,
			Error:   &ErrorBody{Code: domain.ErrorCode(err), Message: message},
		})
	}
}
