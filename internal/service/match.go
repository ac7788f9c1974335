package service

import (
	"context"
	"log/slog"
	"time"

	"kindling/internal/models"
	"kindling/internal/observability"
	"kindling/internal/repository"
)

// MatchService records swipe decisions, detects mutual likes, and maintains
// the per-user match records.
type MatchService struct {
	profiles repository.ProfileRepository
	swipes   repository.SwipeLedger
	matches  repository.MatchRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewMatchService returns a new MatchService.
func NewMatchService(profiles repository.ProfileRepository, swipes repository.SwipeLedger, matches repository.MatchRepository, logger *slog.Logger) *MatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MatchService{
		profiles: profiles,
		swipes:   swipes,
		matches:  matches,
		logger:   logger,
		now:      time.Now,
	}
}

// RecordDecision records the seeker's swipe on the candidate and reports
// whether a mutual like now exists. On a match it writes both directional
// records; the two writes are not transactional, so a failure between them
// can leave a one-sided record until the next listing reconciles it.
func (s *MatchService) RecordDecision(ctx context.Context, seekerID, candidateID string, liked bool) (*models.MatchOutcome, error) {
	if seekerID == candidateID {
		return nil, models.NewValidationError("cannot swipe on yourself")
	}

	if err := s.swipes.Record(ctx, seekerID, candidateID, liked); err != nil {
		return nil, err
	}
	observability.SwipesRecorded.WithLabelValues(decisionLabel(liked)).Inc()

	if !liked {
		return models.NoMatch(), nil
	}

	// Mutual-like detection: read the candidate's own ledger for an entry
	// keyed by the seeker. Both users must have independently liked each
	// other.
	candidateHistory, err := s.swipes.GetHistory(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if !candidateHistory[seekerID] {
		return models.NoMatch(), nil
	}

	seeker, err := s.profiles.GetByID(ctx, seekerID)
	if err != nil {
		return nil, err
	}
	candidate, err := s.profiles.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	matchedAt := s.now()
	forSeeker, err := models.NewMatchSummary(seeker.UID, candidate, matchedAt)
	if err != nil {
		return nil, err
	}
	forCandidate, err := models.NewMatchSummary(candidate.UID, seeker, matchedAt)
	if err != nil {
		return nil, err
	}

	if err := s.matches.Put(ctx, forSeeker); err != nil {
		return nil, err
	}
	if err := s.matches.Put(ctx, forCandidate); err != nil {
		// The seeker-side record exists; the reconciliation sweep on the
		// candidate's next listing re-writes the missing half.
		return nil, err
	}

	observability.MatchesCreated.Inc()
	s.logger.InfoContext(ctx, "match created",
		slog.String("seeker_id", seekerID),
		slog.String("candidate_id", candidateID))

	return models.Matched(forSeeker), nil
}

// ListMatches returns every match record stored under the user, most recent
// first. Before returning it runs a reconciliation sweep: for every listed
// pair it verifies the counterpart's mirror record and re-writes it when a
// previously failed second write left the match one-sided.
func (s *MatchService) ListMatches(ctx context.Context, userID string) ([]models.MatchSummary, error) {
	records, err := s.matches.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.reconcile(ctx, userID, records)

	return records, nil
}

// reconcile repairs asymmetric matches best-effort; failures are logged and
// never fail the listing.
func (s *MatchService) reconcile(ctx context.Context, ownerID string, records []models.MatchSummary) {
	var owner *models.User

	for _, record := range records {
		exists, err := s.matches.Exists(ctx, record.UserID, ownerID)
		if err != nil {
			s.logger.WarnContext(ctx, "match reconciliation check failed",
				slog.String("counterpart_id", record.UserID), "error", err)
			continue
		}
		if exists {
			continue
		}

		if owner == nil {
			owner, err = s.profiles.GetByID(ctx, ownerID)
			if err != nil {
				s.logger.WarnContext(ctx, "match reconciliation skipped",
					slog.String("owner_id", ownerID), "error", err)
				return
			}
		}

		mirror, err := models.NewMatchSummary(record.UserID, owner, record.MatchedAt)
		if err != nil {
			s.logger.WarnContext(ctx, "match reconciliation skipped",
				slog.String("counterpart_id", record.UserID), "error", err)
			continue
		}
		if err := s.matches.Put(ctx, mirror); err != nil {
			s.logger.WarnContext(ctx, "match reconciliation write failed",
				slog.String("counterpart_id", record.UserID), "error", err)
			continue
		}

		observability.MatchRepairs.Inc()
		s.logger.InfoContext(ctx, "repaired one-sided match",
			slog.String("owner_id", ownerID),
			slog.String("counterpart_id", record.UserID))
	}
}

func decisionLabel(liked bool) string {
	if liked {
		return "like"
	}
	return "pass"
}
