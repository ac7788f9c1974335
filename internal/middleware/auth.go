// Package middleware provides authentication, logging, rate limiting, and
// observability middleware for the HTTP surface.
package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"kindling/internal/models"
	"kindling/internal/session"
)

// AuthRequired enforces authentication for protected routes. On success the
// acting user's id is stored in c.Locals("userID") and in the request
// context, so every downstream core call receives an explicit user id
// instead of reading ambient session state.
func AuthRequired(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization header required"))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid authorization header format"))
		}

		userID, err := sessions.Verify(c.UserContext(), parts[1])
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}

		c.Locals("userID", userID)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))

		return c.Next()
	}
}

// BearerToken extracts the raw bearer token from the request, if present.
func BearerToken(c *fiber.Ctx) (string, bool) {
	parts := strings.Split(c.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
