package server

import (
	"github.com/gofiber/fiber/v2"

	"kindling/internal/models"
)

// GetCandidates handles GET /api/candidates. It returns the filtered pool
// of prospective users for the authenticated seeker: age within the seeking
// range, minus the seeker, minus everyone already swiped on.
func (s *Server) GetCandidates(c *fiber.Ctx) error {
	seeker, err := s.profileService.GetUser(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	candidates, err := s.discoveryService.FindCandidates(c.UserContext(), seeker)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"candidates": candidates})
}
