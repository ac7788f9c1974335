package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"kindling/internal/models"
)

// currentUserID returns the authenticated user's id set by the auth
// middleware. Handlers behind AuthRequired can rely on it being present.
func currentUserID(c *fiber.Ctx) string {
	if uid, ok := c.Locals("userID").(string); ok {
		return uid
	}
	return ""
}

// mapServiceError translates core error codes to HTTP status codes.
func mapServiceError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}

	switch appErr.Code {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeValidation:
		return fiber.StatusBadRequest
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case models.CodeMissingImage:
		return fiber.StatusUnprocessableEntity
	case models.CodeRemoteUnavailable:
		return fiber.StatusServiceUnavailable
	case models.CodeDecodeError:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
