package models

import "time"

// MatchSummary is one directional half of a match. Two of these are written
// per match, one under each participant, each pointing at the counterpart.
type MatchSummary struct {
	ID              string    `bson:"_id" json:"-"`
	OwnerID         string    `bson:"ownerID" json:"-"`
	UserID          string    `bson:"userID" json:"user_id"`
	Name            string    `bson:"name" json:"name"`
	ProfileImageURL string    `bson:"profileImageURL" json:"profile_image_url"`
	MatchedAt       time.Time `bson:"matchedAt" json:"matched_at"`
}

// MatchRecordID builds the deterministic record key for a directional match
// record, keeping re-matches of the same pair idempotent.
func MatchRecordID(ownerID, counterpartID string) string {
	return ownerID + ":" + counterpartID
}

// NewMatchSummary builds the directional record stored under ownerID
// referencing the counterpart profile. The counterpart must have at least
// one image.
func NewMatchSummary(ownerID string, counterpart *User, at time.Time) (*MatchSummary, error) {
	imageURL, ok := counterpart.PrimaryImageURL()
	if !ok {
		return nil, NewMissingImageError(counterpart.UID)
	}
	return &MatchSummary{
		ID:              MatchRecordID(ownerID, counterpart.UID),
		OwnerID:         ownerID,
		UserID:          counterpart.UID,
		Name:            counterpart.Name,
		ProfileImageURL: imageURL,
		MatchedAt:       at,
	}, nil
}

// MatchOutcome is the result of recording a swipe decision.
type MatchOutcome struct {
	Matched bool          `json:"matched"`
	Match   *MatchSummary `json:"match,omitempty"`
}

// NoMatch is the outcome for a decision that did not produce a match.
func NoMatch() *MatchOutcome {
	return &MatchOutcome{}
}

// Matched is the outcome for a mutual like, carrying the counterpart summary
// the caller renders in the match celebration view.
func Matched(counterpart *MatchSummary) *MatchOutcome {
	return &MatchOutcome{Matched: true, Match: counterpart}
}
