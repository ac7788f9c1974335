package store

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"kindling/internal/models"
)

// BlobStore is the write-once object store for profile image assets.
// Put stores already-encoded bytes under the given key and returns a
// publicly resolvable URL.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
}

// CloudinaryStore stores blobs in Cloudinary under a configured folder.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore builds a CloudinaryStore from a CLOUDINARY_URL-style
// connection string.
func NewCloudinaryStore(url, folder string) (*CloudinaryStore, error) {
	if url == "" {
		return nil, fmt.Errorf("cloudinary URL is empty")
	}
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	if folder == "" {
		folder = "images"
	}
	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

// Put uploads the blob under folder/key and returns its download URL.
func (s *CloudinaryStore) Put(ctx context.Context, key string, data []byte) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     key,
		ResourceType: "image",
	})
	if err != nil {
		return "", models.NewRemoteError("image upload", err)
	}
	return result.SecureURL, nil
}
