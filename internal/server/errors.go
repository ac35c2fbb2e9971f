package server

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// ErrorResponse is the envelope every failed request gets.
type ErrorResponse struct {
	Message  string         `json:"message"`
	TextCode string         `json:"text_code,omitempty"`
	Fields   map[string]any `json:"fields,omitempty"`
}

// errorHandler translates rich errors into HTTP statuses. The error
// codes double as status codes, so the mapping is direct; anything
// else becomes an opaque 500.
func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var rich *errors.Error
		if errors.As(err, &rich) {
			status := int(rich.Code)
			if status < fiber.StatusBadRequest || status > 599 {
				status = fiber.StatusInternalServerError
			}

			body := ErrorResponse{
				Message:  rich.Message,
				TextCode: rich.TextCode,
			}
			if status < fiber.StatusInternalServerError {
				body.Fields = rich.Metadata
			} else {
				// Internals never leak past the log line.
				logger.Error("request failed",
					"path", c.Path(),
					"method", c.Method(),
					"error", err,
				)
				body.Message = "internal server error"
			}
			return c.Status(status).JSON(body)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorResponse{Message: fiberErr.Message})
		}

		logger.Error("request failed",
			"path", c.Path(),
			"method", c.Method(),
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "internal server error",
		})
	}
}
