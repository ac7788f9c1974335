package server

import (
	"github.com/gofiber/fiber/v2"

	"kindling/internal/models"
)

// CreateSwipe handles POST /api/swipes. It records the authenticated user's
// decision on a candidate and reports whether a mutual like now exists; on a
// match the response carries the counterpart summary for the celebration
// view.
func (s *Server) CreateSwipe(c *fiber.Ctx) error {
	var req struct {
		CandidateID string `json:"candidate_id"`
		Liked       *bool  `json:"liked"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.CandidateID == "" || req.Liked == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("candidate_id and liked are required"))
	}

	outcome, err := s.matchService.RecordDecision(c.UserContext(), currentUserID(c), req.CandidateID, *req.Liked)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(outcome)
}
