package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kindling/internal/models"
	"kindling/internal/store"
)

// SwipeLedger records every swipe decision a user makes and serves the
// decisions back for candidate exclusion and mutual-like detection.
type SwipeLedger interface {
	// GetHistory returns the user's decisions keyed by candidate uid.
	// A user who has never swiped gets an empty map, not an error.
	GetHistory(ctx context.Context, userID string) (map[string]bool, error)

	// Record adds or overwrites the decision for a single candidate.
	// Existing decisions for other candidates are preserved.
	Record(ctx context.Context, userID, candidateID string, liked bool) error
}

type swipeLedger struct {
	store *store.Mongo
}

// NewSwipeLedger returns a SwipeLedger backed by the document store.
func NewSwipeLedger(s *store.Mongo) SwipeLedger {
	return &swipeLedger{store: s}
}

func (l *swipeLedger) collection() *mongo.Collection {
	return l.store.Collection(store.SwipesCollection)
}

func (l *swipeLedger) GetHistory(ctx context.Context, userID string) (map[string]bool, error) {
	ctx, cancel := l.store.OpContext(ctx)
	defer cancel()

	var record models.SwipeRecord
	if err := l.collection().FindOne(ctx, bson.M{"_id": userID}).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return map[string]bool{}, nil
		}
		return nil, models.NewRemoteError("swipe history fetch", err)
	}

	if record.Decisions == nil {
		return map[string]bool{}, nil
	}
	return record.Decisions, nil
}

// Record sets only the one decision entry, upserting the record when the
// user has never swiped. A wholesale replace here would destroy the rest of
// the history.
func (l *swipeLedger) Record(ctx context.Context, userID, candidateID string, liked bool) error {
	ctx, cancel := l.store.OpContext(ctx)
	defer cancel()

	_, err := l.collection().UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"decisions." + candidateID: liked}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return models.NewRemoteError("swipe record", err)
	}
	return nil
}
