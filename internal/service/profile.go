package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"kindling/internal/images"
	"kindling/internal/models"
	"kindling/internal/repository"
	"kindling/internal/store"
	"kindling/internal/validation"
)

// ProfileService manages user profile documents and their image assets.
type ProfileService struct {
	profiles repository.ProfileRepository
	blobs    store.BlobStore
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profiles repository.ProfileRepository, blobs store.BlobStore) *ProfileService {
	return &ProfileService{profiles: profiles, blobs: blobs}
}

// GetUser fetches a profile by uid.
func (s *ProfileService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.profiles.GetByID(ctx, id)
}

// SaveUser validates and upserts the full profile document. The write is a
// wholesale overwrite keyed by uid, not a partial patch.
func (s *ProfileService) SaveUser(ctx context.Context, user *models.User) error {
	user.ApplyDefaults()
	if err := validation.ValidateProfile(user); err != nil {
		return models.NewValidationError(err.Error())
	}
	return s.profiles.Save(ctx, user)
}

// UploadImage prepares the raw upload (downscale + lossy JPEG re-encode),
// stores it under a freshly generated key, and returns the download URL.
func (s *ProfileService) UploadImage(ctx context.Context, data []byte) (string, error) {
	if s.blobs == nil {
		return "", models.NewRemoteError("image upload", errors.New("blob store not configured"))
	}
	if len(data) == 0 {
		return "", models.NewValidationError("empty image upload")
	}

	prepared, err := images.Prepare(data)
	if err != nil {
		return "", models.NewValidationError("unsupported or corrupted image")
	}

	return s.blobs.Put(ctx, uuid.NewString(), prepared)
}
