// Package testutil provides in-memory implementations of the repository
// interfaces for unit tests. The document store has no in-process fake, so
// tests exercise the workflow against these map-backed equivalents.
package testutil

import (
	"context"
	"sort"
	"sync"

	"kindling/internal/models"
)

// MemProfileRepository is an in-memory ProfileRepository.
type MemProfileRepository struct {
	mu    sync.Mutex
	users map[string]models.User
}

// NewMemProfileRepository returns an empty in-memory profile repository.
func NewMemProfileRepository() *MemProfileRepository {
	return &MemProfileRepository{users: make(map[string]models.User)}
}

func (r *MemProfileRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, models.NewNotFoundError("User", id)
	}
	return &user, nil
}

func (r *MemProfileRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *MemProfileRepository) Save(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.UID] = *user
	return nil
}

func (r *MemProfileRepository) ListByAgeRange(_ context.Context, minAge, maxAge int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, user := range r.users {
		if user.Age >= minAge && user.Age <= maxAge {
			out = append(out, user)
		}
	}
	return out, nil
}

// MemSwipeLedger is an in-memory SwipeLedger.
type MemSwipeLedger struct {
	mu        sync.Mutex
	histories map[string]map[string]bool

	// RecordErr, when set, is returned by Record.
	RecordErr error
}

// NewMemSwipeLedger returns an empty in-memory swipe ledger.
func NewMemSwipeLedger() *MemSwipeLedger {
	return &MemSwipeLedger{histories: make(map[string]map[string]bool)}
}

func (l *MemSwipeLedger) GetHistory(_ context.Context, userID string) (map[string]bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]bool, len(l.histories[userID]))
	for k, v := range l.histories[userID] {
		out[k] = v
	}
	return out, nil
}

func (l *MemSwipeLedger) Record(_ context.Context, userID, candidateID string, liked bool) error {
	if l.RecordErr != nil {
		return l.RecordErr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.histories[userID] == nil {
		l.histories[userID] = make(map[string]bool)
	}
	l.histories[userID][candidateID] = liked
	return nil
}

// MemMatchRepository is an in-memory MatchRepository.
type MemMatchRepository struct {
	mu      sync.Mutex
	records map[string]models.MatchSummary

	// PutHook, when set, runs before each Put; a non-nil return aborts the
	// write. Used to simulate a failed second write.
	PutHook func(*models.MatchSummary) error

	// ExistsErr, when set, is returned by Exists.
	ExistsErr error
}

// NewMemMatchRepository returns an empty in-memory match repository.
func NewMemMatchRepository() *MemMatchRepository {
	return &MemMatchRepository{records: make(map[string]models.MatchSummary)}
}

func (r *MemMatchRepository) Put(_ context.Context, record *models.MatchSummary) error {
	if r.PutHook != nil {
		if err := r.PutHook(record); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = *record
	return nil
}

func (r *MemMatchRepository) ListByOwner(_ context.Context, ownerID string) ([]models.MatchSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.MatchSummary
	for _, record := range r.records {
		if record.OwnerID == ownerID {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MatchedAt.After(out[j].MatchedAt)
	})
	return out, nil
}

func (r *MemMatchRepository) Exists(_ context.Context, ownerID, counterpartID string) (bool, error) {
	if r.ExistsErr != nil {
		return false, r.ExistsErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.records[models.MatchRecordID(ownerID, counterpartID)]
	return ok, nil
}
