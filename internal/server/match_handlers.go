package server

import (
	"github.com/gofiber/fiber/v2"

	"kindling/internal/models"
)

// GetMatches handles GET /api/matches: the authenticated user's match
// records, most recent first. This backs the messages screen's thread list.
func (s *Server) GetMatches(c *fiber.Ctx) error {
	matches, err := s.matchService.ListMatches(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"matches": matches})
}
