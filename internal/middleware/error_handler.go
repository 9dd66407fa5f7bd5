package middleware

import (
	"errors"

	"oemlink-backend/internal/pkg/apperror"
	"oemlink-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the global error handler. Returns the standard error format.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ae *apperror.AppError
	if errors.As(err, &ae) {
		return response.AppError(c, ae)
	}

	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	return response.Error(c, message, code, nil)
}
