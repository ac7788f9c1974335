// Package store wires the remote backing services: the MongoDB document
// store and the Cloudinary blob store.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names used by the data-access core.
const (
	UsersCollection   = "users"
	SwipesCollection  = "swipes"
	MatchesCollection = "matches"
)

// Mongo wraps the document-store client and applies a per-operation timeout
// at every call boundary. The reference behavior had no timeout policy; this
// makes the gap explicit and configurable instead of silent.
type Mongo struct {
	client    *mongo.Client
	db        *mongo.Database
	opTimeout time.Duration
}

// Connect establishes and verifies a connection to the document store.
func Connect(ctx context.Context, uri, database string, opTimeout time.Duration) (*Mongo, error) {
	if opTimeout <= 0 {
		opTimeout = 10 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Mongo{
		client:    client,
		db:        client.Database(database),
		opTimeout: opTimeout,
	}, nil
}

// Collection returns a handle to the named collection.
func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// OpContext derives a context bounded by the configured per-operation timeout.
func (m *Mongo) OpContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.opTimeout)
}

// Ping verifies the store is reachable. Used by readiness checks.
func (m *Mongo) Ping(ctx context.Context) error {
	ctx, cancel := m.OpContext(ctx)
	defer cancel()
	return m.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
