package server

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"kindling/internal/models"
)

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user id"))
	}

	user, err := s.profileService.GetUser(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(user)
}

// UpdateProfile handles PUT /api/profile. The body is the full profile of
// the authenticated user; the stored document is overwritten wholesale.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Name          string   `json:"name"`
		Age           int      `json:"age"`
		ImageURLs     []string `json:"image_urls"`
		Profession    string   `json:"profession"`
		Bio           string   `json:"bio"`
		MinSeekingAge int      `json:"min_seeking_age"`
		MaxSeekingAge int      `json:"max_seeking_age"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Identity and credentials are not profile fields; carry them over from
	// the stored document.
	current, err := s.profileService.GetUser(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	user := &models.User{
		UID:           userID,
		Name:          req.Name,
		Email:         current.Email,
		Age:           req.Age,
		ImageURLs:     req.ImageURLs,
		Profession:    req.Profession,
		Bio:           req.Bio,
		MinSeekingAge: req.MinSeekingAge,
		MaxSeekingAge: req.MaxSeekingAge,
		PasswordHash:  current.PasswordHash,
		CreatedAt:     current.CreatedAt,
	}

	if err := s.profileService.SaveUser(c.UserContext(), user); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(user)
}

// UploadImage handles POST /api/images. It accepts a multipart "image" file
// and responds with the stored asset's URL.
func (s *Server) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}

	url, err := s.profileService.UploadImage(c.UserContext(), content)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
