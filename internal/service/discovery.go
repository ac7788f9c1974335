// Package service implements the user-matching workflow: candidate
// discovery, the swipe/match engine, and profile management.
package service

import (
	"context"

	"kindling/internal/models"
	"kindling/internal/repository"
)

// DiscoveryService produces the filtered pool of prospective users for a
// seeker.
type DiscoveryService struct {
	profiles repository.ProfileRepository
	swipes   repository.SwipeLedger
}

// NewDiscoveryService returns a new DiscoveryService.
func NewDiscoveryService(profiles repository.ProfileRepository, swipes repository.SwipeLedger) *DiscoveryService {
	return &DiscoveryService{profiles: profiles, swipes: swipes}
}

// FindCandidates returns every user whose age falls inside the seeker's
// seeking range, excluding the seeker and anyone the seeker has already
// swiped on, whatever the decision was. Result ordering is store order.
func (s *DiscoveryService) FindCandidates(ctx context.Context, seeker *models.User) ([]models.User, error) {
	history, err := s.swipes.GetHistory(ctx, seeker.UID)
	if err != nil {
		return nil, err
	}

	pool, err := s.profiles.ListByAgeRange(ctx, seeker.MinSeekingAge, seeker.MaxSeekingAge)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.User, 0, len(pool))
	for _, user := range pool {
		if user.UID == seeker.UID {
			continue
		}
		if _, swiped := history[user.UID]; swiped {
			continue
		}
		candidates = append(candidates, user)
	}

	return candidates, nil
}
