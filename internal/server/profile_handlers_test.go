package server

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBlobStore struct {
	keys []string
}

func (s *recordingBlobStore) Put(_ context.Context, key string, _ []byte) (string, error) {
	s.keys = append(s.keys, key)
	return "https://cdn.example/" + key + ".jpg", nil
}

func smallPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		img.Set(x, x, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestGetUserProfile(t *testing.T) {
	t.Run("returns the stored profile", func(t *testing.T) {
		s, app := newTestServer(t, testDeps{})
		token := seedUser(t, s, testProfile("u1", 27))
		seedUser(t, s, testProfile("u2", 31))

		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/u2", nil, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "u2", body["uid"])
		assert.Equal(t, "User u2", body["name"])
		assert.Equal(t, float64(31), body["age"])
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		s, app := newTestServer(t, testDeps{})
		token := seedUser(t, s, testProfile("u1", 27))

		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/nobody", nil, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("overwrites the profile and keeps credentials", func(t *testing.T) {
		s, app := newTestServer(t, testDeps{})

		original := testProfile("u1", 27)
		original.PasswordHash = "hashed"
		original.Bio = "old bio"
		token := seedUser(t, s, original)

		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/profile", map[string]any{
			"name":            "Avery Updated",
			"age":             28,
			"image_urls":      []string{"https://cdn.example/new.jpg"},
			"profession":      "Engineer",
			"bio":             "new bio",
			"min_seeking_age": 24,
			"max_seeking_age": 34,
		}, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		stored, err := s.profileRepo.GetByID(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "Avery Updated", stored.Name)
		assert.Equal(t, 28, stored.Age)
		assert.Equal(t, "new bio", stored.Bio)
		assert.Equal(t, 24, stored.MinSeekingAge)
		assert.Equal(t, "u1@example.com", stored.Email)
		assert.Equal(t, "hashed", stored.PasswordHash)
	})

	t.Run("invalid profile rejected", func(t *testing.T) {
		s, app := newTestServer(t, testDeps{})
		token := seedUser(t, s, testProfile("u1", 27))

		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/profile", map[string]any{
			"name": "",
			"age":  28,
		}, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUploadImage(t *testing.T) {
	t.Run("stores the image and returns its URL", func(t *testing.T) {
		blobs := &recordingBlobStore{}
		s, app := newTestServer(t, testDeps{blobs: blobs})
		token := seedUser(t, s, testProfile("u1", 27))

		body, contentType := multipartImage(t, "image", smallPNG(t))
		req := httptest.NewRequest(http.MethodPost, "/api/images", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		payload := decodeBody(t, resp)
		require.Len(t, blobs.keys, 1)
		assert.Contains(t, payload["url"], blobs.keys[0])
	})

	t.Run("missing file is rejected", func(t *testing.T) {
		s, app := newTestServer(t, testDeps{blobs: &recordingBlobStore{}})
		token := seedUser(t, s, testProfile("u1", 27))

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/images", nil, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("no blob store configured", func(t *testing.T) {
		s, app := newTestServer(t, testDeps{})
		token := seedUser(t, s, testProfile("u1", 27))

		body, contentType := multipartImage(t, "image", smallPNG(t))
		req := httptest.NewRequest(http.MethodPost, "/api/images", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}
