// Copyright (c) 2026 RateUp. All rights reserved.

package vote

import (
	"context"
	"sync"
	"time"

	"github.com/nifoox/rateup/internal/platform/apperr"
)

type voteKey struct {
	reviewID int64
	userID   int64
}

// memoryStore is an in-process [Store] whose upsert is atomic under one mutex,
// mirroring the single-statement upsert of the PostgreSQL store.
type memoryStore struct {
	mu      sync.Mutex
	votes   map[voteKey]Vote
	reviews map[int64]bool
	err     error
}

func newMemoryStore(reviewIDs ...int64) *memoryStore {
	store := &memoryStore{
		votes:   make(map[voteKey]Vote),
		reviews: make(map[int64]bool),
	}
	for _, id := range reviewIDs {
		store.reviews[id] = true
	}
	return store
}

func (store *memoryStore) Upsert(_ context.Context, reviewID, userID int64, value Value) (*Vote, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.err != nil {
		return nil, store.err
	}
	if !store.reviews[reviewID] {
		return nil, apperr.NotFound("Review")
	}

	now := time.Now()
	key := voteKey{reviewID, userID}
	vote, found := store.votes[key]
	if !found {
		vote = Vote{ReviewID: reviewID, UserID: userID, CreatedAt: now}
	}
	vote.Value = value
	vote.UpdatedAt = now
	store.votes[key] = vote

	return &vote, nil
}

func (store *memoryStore) Delete(_ context.Context, reviewID, userID int64) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.err != nil {
		return false, store.err
	}

	key := voteKey{reviewID, userID}
	_, found := store.votes[key]
	delete(store.votes, key)
	return found, nil
}

func (store *memoryStore) Summarize(_ context.Context, reviewID int64) (Summary, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.err != nil {
		return Summary{}, store.err
	}

	var up, down int64
	for key, vote := range store.votes {
		if key.reviewID != reviewID {
			continue
		}
		switch vote.Value {
		case Up:
			up++
		case Down:
			down++
		}
	}
	return NewSummary(up, down), nil
}

func (store *memoryStore) UserVote(_ context.Context, reviewID, userID int64) (Value, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.err != nil {
		return None, store.err
	}
	return store.votes[voteKey{reviewID, userID}].Value, nil
}

// rows returns the number of rows held for (reviewID, userID).
func (store *memoryStore) rows(reviewID int64) int {
	store.mu.Lock()
	defer store.mu.Unlock()

	count := 0
	for key := range store.votes {
		if key.reviewID == reviewID {
			count++
		}
	}
	return count
}

func (store *memoryStore) Exists(_ context.Context, reviewID int64) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.reviews[reviewID], nil
}
