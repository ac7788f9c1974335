package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kindling/internal/models"
	"kindling/internal/store"
)

// MatchRepository persists the directional match records. A confirmed match
// is two records, one under each participant.
type MatchRepository interface {
	Put(ctx context.Context, record *models.MatchSummary) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.MatchSummary, error)
	Exists(ctx context.Context, ownerID, counterpartID string) (bool, error)
}

type matchRepository struct {
	store *store.Mongo
}

// NewMatchRepository returns a MatchRepository backed by the document store.
func NewMatchRepository(s *store.Mongo) MatchRepository {
	return &matchRepository{store: s}
}

func (r *matchRepository) collection() *mongo.Collection {
	return r.store.Collection(store.MatchesCollection)
}

// Put upserts the record under its deterministic owner:counterpart key, so
// re-matching an existing pair re-writes identical data.
func (r *matchRepository) Put(ctx context.Context, record *models.MatchSummary) error {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	_, err := r.collection().ReplaceOne(ctx,
		bson.M{"_id": record.ID},
		record,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return models.NewRemoteError("match record write", err)
	}
	return nil
}

func (r *matchRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.MatchSummary, error) {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	cursor, err := r.collection().Find(ctx,
		bson.M{"ownerID": ownerID},
		options.Find().SetSort(bson.D{{Key: "matchedAt", Value: -1}}),
	)
	if err != nil {
		return nil, models.NewRemoteError("match listing", err)
	}
	defer cursor.Close(ctx)

	var matches []models.MatchSummary
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, models.NewDecodeError("Match", err)
	}
	return matches, nil
}

func (r *matchRepository) Exists(ctx context.Context, ownerID, counterpartID string) (bool, error) {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	count, err := r.collection().CountDocuments(ctx,
		bson.M{"_id": models.MatchRecordID(ownerID, counterpartID)},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, models.NewRemoteError("match lookup", err)
	}
	return count > 0, nil
}
