package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kindling/internal/models"
	"kindling/internal/testutil"
)

type matchFixture struct {
	profiles *testutil.MemProfileRepository
	swipes   *testutil.MemSwipeLedger
	matches  *testutil.MemMatchRepository
	svc      *MatchService
}

func newMatchFixture(t *testing.T, users ...models.User) *matchFixture {
	t.Helper()
	f := &matchFixture{
		profiles: testutil.NewMemProfileRepository(),
		swipes:   testutil.NewMemSwipeLedger(),
		matches:  testutil.NewMemMatchRepository(),
	}
	seedProfiles(t, f.profiles, users...)
	f.svc = NewMatchService(f.profiles, f.swipes, f.matches, slog.Default())
	return f
}

func testUser(uid string, age int) models.User {
	return models.User{
		UID:       uid,
		Name:      "User " + uid,
		Age:       age,
		ImageURLs: []string{"https://cdn.example/" + uid + ".jpg"},
	}
}

func TestRecordDecision_StoresDecisionsAdditively(t *testing.T) {
	t.Parallel()

	f := newMatchFixture(t, testUser("a", 25), testUser("b", 26), testUser("c", 27))
	ctx := context.Background()

	_, err := f.svc.RecordDecision(ctx, "a", "b", true)
	require.NoError(t, err)
	_, err = f.svc.RecordDecision(ctx, "a", "c", false)
	require.NoError(t, err)

	history, err := f.swipes.GetHistory(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"b": true, "c": false}, history)
}

func TestRecordDecision_LastWriteWins(t *testing.T) {
	t.Parallel()

	f := newMatchFixture(t, testUser("a", 25), testUser("b", 26))
	ctx := context.Background()

	_, err := f.svc.RecordDecision(ctx, "a", "b", true)
	require.NoError(t, err)
	_, err = f.svc.RecordDecision(ctx, "a", "b", false)
	require.NoError(t, err)

	history, err := f.swipes.GetHistory(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"b": false}, history)
}

func TestRecordDecision_MutualLikeCreatesBothRecords(t *testing.T) {
	t.Parallel()

	f := newMatchFixture(t, testUser("a", 25), testUser("b", 26))
	ctx := context.Background()

	outcome, err := f.svc.RecordDecision(ctx, "b", "a", true)
	require.NoError(t, err)
	assert.False(t, outcome.Matched)
	assert.Nil(t, outcome.Match)

	outcome, err = f.svc.RecordDecision(ctx, "a", "b", true)
	require.NoError(t, err)
	require.True(t, outcome.Matched)
	require.NotNil(t, outcome.Match)
	assert.Equal(t, "b", outcome.Match.UserID)
	assert.Equal(t, "User b", outcome.Match.Name)
	assert.Equal(t, "https://cdn.example/b.jpg", outcome.Match.ProfileImageURL)

	aMatches, err := f.svc.ListMatches(ctx, "a")
	require.NoError(t, err)
	require.Len(t, aMatches, 1)
	assert.Equal(t, "b", aMatches[0].UserID)

	bMatches, err := f.svc.ListMatches(ctx, "b")
	require.NoError(t, err)
	require.Len(t, bMatches, 1)
	assert.Equal(t, "a", bMatches[0].UserID)

	// Both sides carry the same timestamp.
	assert.True(t, aMatches[0].MatchedAt.Equal(bMatches[0].MatchedAt))
}

func TestRecordDecision_OneSidedLikeIsNotAMatch(t *testing.T) {
	t.Parallel()

	f := newMatchFixture(t, testUser("a", 25), testUser("b", 26))
	ctx := context.Background()

	outcome, err := f.svc.RecordDecision(ctx, "a", "b", true)
	require.NoError(t, err)
	assert.False(t, outcome.Matched)

	matches, err := f.svc.ListMatches(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRecordDecision_DislikeNeverMatches(t *testing.T) {
	t.Parallel()

	f := newMatchFixture(t, testUser("a", 25), testUser("b", 26))
	ctx := context.Background()

	// b liked a first; a dislikes b, which must not match even though the
	// reverse like exists.
	_, err := f.svc.RecordDecision(ctx, "b", "a", true)
	require.NoError(t, err)

	outcome, err := f.svc.RecordDecision(ctx, "a", "b", false)
	require.NoError(t, err)
	assert.False(t, outcome.Matched)

	matches, err := f.svc.ListMatches(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRecordDecision_SelfSwipeRejected(t *testing.T) {
	t.Parallel()

	f := newMatchFixture(t, testUser("a", 25))

	_, err := f.svc.RecordDecision(context.Background(), "a", "a", true)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeValidation))
}

func TestRecordDecision_RepeatedMatchIsIdempotent(t *testing.T) {
	t.Parallel()

	f := newMatchFixture(t, testUser("a", 25), testUser("b", 26))
	ctx := context.Background()

	_, err := f.svc.RecordDecision(ctx, "b", "a", true)
	require.NoError(t, err)
	_, err = f.svc.RecordDecision(ctx, "a", "b", true)
	require.NoError(t, err)

	// A re-swipe after the match must overwrite the existing records, not
	// duplicate them.
	outcome, err := f.svc.RecordDecision(ctx, "a", "b", true)
	require.NoError(t, err)
	assert.True(t, outcome.Matched)

	matches, err := f.svc.ListMatches(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRecordDecision_MissingCounterpartImage(t *testing.T) {
	t.Parallel()

	noImage := models.User{UID: "b", Name: "User b", Age: 26}
	f := newMatchFixture(t, testUser("a", 25), noImage)
	ctx := context.Background()

	_, err := f.svc.RecordDecision(ctx, "b", "a", true)
	require.NoError(t, err)

	_, err = f.svc.RecordDecision(ctx, "a", "b", true)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeMissingImage))
}

func TestRecordDecision_SwipeWriteFailureSurfaces(t *testing.T) {
	t.Parallel()

	f := newMatchFixture(t, testUser("a", 25), testUser("b", 26))
	f.swipes.RecordErr = errors.New("write timeout")

	_, err := f.svc.RecordDecision(context.Background(), "a", "b", true)
	require.Error(t, err)
	assert.ErrorContains(t, err, "write timeout")
}

func TestListMatches_MostRecentFirst(t *testing.T) {
	t.Parallel()

	f := newMatchFixture(t, testUser("a", 25), testUser("b", 26), testUser("c", 27))
	ctx := context.Background()
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	tick := 0
	f.svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	_, err := f.svc.RecordDecision(ctx, "b", "a", true)
	require.NoError(t, err)
	_, err = f.svc.RecordDecision(ctx, "a", "b", true)
	require.NoError(t, err)
	_, err = f.svc.RecordDecision(ctx, "c", "a", true)
	require.NoError(t, err)
	_, err = f.svc.RecordDecision(ctx, "a", "c", true)
	require.NoError(t, err)

	matches, err := f.svc.ListMatches(ctx, "a")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "c", matches[0].UserID)
	assert.Equal(t, "b", matches[1].UserID)
}

func TestListMatches_RepairsOneSidedMatch(t *testing.T) {
	t.Parallel()

	f := newMatchFixture(t, testUser("a", 25), testUser("b", 26))
	ctx := context.Background()

	_, err := f.svc.RecordDecision(ctx, "b", "a", true)
	require.NoError(t, err)

	// Fail the second (candidate-side) write so only a's record lands.
	f.matches.PutHook = func(record *models.MatchSummary) error {
		if record.OwnerID == "b" {
			return errors.New("write timeout")
		}
		return nil
	}
	_, err = f.svc.RecordDecision(ctx, "a", "b", true)
	require.Error(t, err)

	bMatches, err := f.svc.ListMatches(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, bMatches)

	// The next healthy listing by a detects the missing mirror and
	// re-writes it.
	f.matches.PutHook = nil
	aMatches, err := f.svc.ListMatches(ctx, "a")
	require.NoError(t, err)
	require.Len(t, aMatches, 1)

	bMatches, err = f.svc.ListMatches(ctx, "b")
	require.NoError(t, err)
	require.Len(t, bMatches, 1)
	assert.Equal(t, "a", bMatches[0].UserID)
	assert.True(t, bMatches[0].MatchedAt.Equal(aMatches[0].MatchedAt))
}

func TestListMatches_ReconcileCheckFailureIsLoggedNotFatal(t *testing.T) {
	t.Parallel()

	f := newMatchFixture(t, testUser("a", 25), testUser("b", 26))
	ctx := context.Background()

	_, err := f.svc.RecordDecision(ctx, "b", "a", true)
	require.NoError(t, err)
	_, err = f.svc.RecordDecision(ctx, "a", "b", true)
	require.NoError(t, err)

	var logs bytes.Buffer
	f.svc.logger = slog.New(slog.NewTextHandler(&logs, nil))
	f.matches.ExistsErr = errors.New("server selection timeout")

	matches, err := f.svc.ListMatches(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
	assert.Contains(t, logs.String(), "match reconciliation check failed")
}

func TestListMatches_EmptyForNewUser(t *testing.T) {
	t.Parallel()

	f := newMatchFixture(t, testUser("a", 25))

	matches, err := f.svc.ListMatches(context.Background(), "a")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
