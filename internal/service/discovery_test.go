package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kindling/internal/models"
	"kindling/internal/testutil"
)

func seedProfiles(t *testing.T, repo *testutil.MemProfileRepository, users ...models.User) {
	t.Helper()
	for i := range users {
		users[i].ApplyDefaults()
		require.NoError(t, repo.Save(context.Background(), &users[i]))
	}
}

func candidateIDs(candidates []models.User) []string {
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.UID)
	}
	return ids
}

func TestFindCandidates_AgeRangeBoundaries(t *testing.T) {
	t.Parallel()

	profiles := testutil.NewMemProfileRepository()
	seedProfiles(t, profiles,
		models.User{UID: "seeker", Name: "Seeker", Age: 30, MinSeekingAge: 25, MaxSeekingAge: 35},
		models.User{UID: "too-young", Name: "A", Age: 24},
		models.User{UID: "at-min", Name: "B", Age: 25},
		models.User{UID: "inside", Name: "C", Age: 30},
		models.User{UID: "at-max", Name: "D", Age: 35},
		models.User{UID: "too-old", Name: "E", Age: 36},
	)

	svc := NewDiscoveryService(profiles, testutil.NewMemSwipeLedger())

	seeker, err := profiles.GetByID(context.Background(), "seeker")
	require.NoError(t, err)

	candidates, err := svc.FindCandidates(context.Background(), seeker)
	require.NoError(t, err)

	ids := candidateIDs(candidates)
	assert.ElementsMatch(t, []string{"at-min", "inside", "at-max"}, ids)
	assert.NotContains(t, ids, "seeker")
}

func TestFindCandidates_ExcludesAlreadySwiped(t *testing.T) {
	t.Parallel()

	profiles := testutil.NewMemProfileRepository()
	seedProfiles(t, profiles,
		models.User{UID: "seeker", Name: "Seeker", Age: 28, MinSeekingAge: 18, MaxSeekingAge: 40},
		models.User{UID: "liked", Name: "A", Age: 27},
		models.User{UID: "passed", Name: "B", Age: 27},
		models.User{UID: "fresh", Name: "C", Age: 27},
	)

	ledger := testutil.NewMemSwipeLedger()
	require.NoError(t, ledger.Record(context.Background(), "seeker", "liked", true))
	require.NoError(t, ledger.Record(context.Background(), "seeker", "passed", false))

	svc := NewDiscoveryService(profiles, ledger)

	seeker, err := profiles.GetByID(context.Background(), "seeker")
	require.NoError(t, err)

	candidates, err := svc.FindCandidates(context.Background(), seeker)
	require.NoError(t, err)

	// Both likes and passes disqualify; only never-seen users remain.
	assert.ElementsMatch(t, []string{"fresh"}, candidateIDs(candidates))
}

func TestFindCandidates_FreshUserSeesEveryoneInRange(t *testing.T) {
	t.Parallel()

	profiles := testutil.NewMemProfileRepository()
	seedProfiles(t, profiles,
		models.User{UID: "seeker", Name: "Seeker", Age: 22},
		models.User{UID: "a", Name: "A", Age: 19},
		models.User{UID: "b", Name: "B", Age: 39},
	)

	svc := NewDiscoveryService(profiles, testutil.NewMemSwipeLedger())

	seeker, err := profiles.GetByID(context.Background(), "seeker")
	require.NoError(t, err)

	// Seeker never touched the seeking range, so the 18..40 defaults apply.
	candidates, err := svc.FindCandidates(context.Background(), seeker)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, candidateIDs(candidates))
}
