package models

// SwipeRecord holds every swipe decision a user has made, keyed by the
// candidate's uid. A new swipe on the same candidate overwrites the prior
// decision; entries are never removed. The record's absence from the store
// is equivalent to "no swipes yet".
type SwipeRecord struct {
	UserID    string          `bson:"_id" json:"user_id"`
	Decisions map[string]bool `bson:"decisions" json:"decisions"`
}
