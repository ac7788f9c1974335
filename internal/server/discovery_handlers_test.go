package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCandidates(t *testing.T) {
	t.Run("filters by seeking range and swipe history", func(t *testing.T) {
		s, app := newTestServer(t, testDeps{})

		seeker := testProfile("seeker", 30)
		seeker.MinSeekingAge = 25
		seeker.MaxSeekingAge = 35
		token := seedUser(t, s, seeker)

		seedUser(t, s, testProfile("in-range", 28))
		seedUser(t, s, testProfile("too-old", 44))
		seedUser(t, s, testProfile("already-swiped", 31))

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/swipes", map[string]any{
			"candidate_id": "already-swiped",
			"liked":        false,
		}, token))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/candidates", nil, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		candidates, ok := body["candidates"].([]any)
		require.True(t, ok)
		require.Len(t, candidates, 1)

		candidate, ok := candidates[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "in-range", candidate["uid"])
	})

	t.Run("unknown seeker is not found", func(t *testing.T) {
		s, app := newTestServer(t, testDeps{})

		// Token references a user that was never stored.
		token, err := s.Sessions().Issue(context.Background(), "ghost")
		require.NoError(t, err)

		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/candidates", nil, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
