// Package repository implements the data access layer over the remote
// document store.
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

// ProfileRepository defines persistence operations for user profiles.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	ListByAgeRange(ctx context.Context, minAge, maxAge int) ([]models.User, error)
}

type profileRepository struct {
	store *store.Mongo
}

// NewProfileRepository returns a ProfileRepository backed by the document store.
func NewProfileRepository(s *store.Mongo) ProfileRepository {
	return &profileRepository{store: s}
}

func (r *profileRepository) collection() *mongo.Collection {
	return r.store.Collection(store.UsersCollection)
}

// decodeUserResult splits fetch failures from malformed documents: any
// transport or query error becomes RemoteUnavailable, and DecodeError is
// reserved for a document that arrived but does not unmarshal.
// mongo.ErrNoDocuments passes through for the caller to classify.
func decodeUserResult(res *mongo.SingleResult, op string) (*models.User, error) {
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, models.NewRemoteError(op, err)
	}

	var doc bson.M
	if err := res.Decode(&doc); err != nil {
		return nil, models.NewDecodeError("User", err)
	}
	return models.UserFromDocument(doc), nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	user, err := decodeUserResult(r.collection().FindOne(ctx, bson.M{"_id": id}), "user fetch")
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail returns (nil, nil) when no profile carries the email.
func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	user, err := decodeUserResult(r.collection().FindOne(ctx, bson.M{"email": email}), "user lookup")
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Save upserts the full profile document keyed by uid. This is a wholesale
// overwrite, not a partial patch.
func (r *profileRepository) Save(ctx context.Context, user *models.User) error {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	_, err := r.collection().ReplaceOne(ctx,
		bson.M{"_id": user.UID},
		user,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return models.NewRemoteError("user save", err)
	}
	return nil
}

// ListByAgeRange returns every profile whose age lies in [minAge, maxAge]
// inclusive. This is the store-side half of candidate discovery; exclusion
// filters are applied by the caller.
func (r *profileRepository) ListByAgeRange(ctx context.Context, minAge, maxAge int) ([]models.User, error) {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	cursor, err := r.collection().Find(ctx, bson.M{
		"age": bson.M{"$gte": minAge, "$lte": maxAge},
	})
	if err != nil {
		return nil, models.NewRemoteError("candidate query", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, models.NewDecodeError("User", err)
		}
		users = append(users, *models.UserFromDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, models.NewRemoteError("candidate query", err)
	}

	return users, nil
}
