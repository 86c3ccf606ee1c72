// Copyright (c) 2026 RateUp. All rights reserved.

package review

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nifoox/rateup/internal/catalog/game"
	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/social/vote"
)

// memoryRepository is an in-memory [Repository] that also resolves games.
type memoryRepository struct {
	mu      sync.Mutex
	nextID  int64
	reviews map[int64]Review
	users   map[int64]string
	games   map[int64]game.Game
	votes   map[int64]vote.Summary
	now     func() time.Time
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		reviews: make(map[int64]Review),
		users:   map[int64]string{1: "alice", 2: "bob", 3: "root"},
		games: map[int64]game.Game{
			100: {ID: 100, Name: "Hollow Knight", Slug: "hollow-knight"},
			200: {ID: 200, Name: "Celeste", Slug: "celeste"},
		},
		votes: make(map[int64]vote.Summary),
		now:   time.Now,
	}
}

func (repo *memoryRepository) GetGame(_ context.Context, id int64) (*game.Game, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	g, ok := repo.games[id]
	if !ok {
		return nil, apperr.NotFound("Game")
	}
	return &g, nil
}

func (repo *memoryRepository) setVotes(reviewID, up, down int64) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.votes[reviewID] = vote.NewSummary(up, down)
}

func (repo *memoryRepository) detail(review Review) *Detail {
	g := repo.games[review.GameID]
	return &Detail{
		Review: review,
		Author: Author{ID: review.UserID, Username: repo.users[review.UserID]},
		Game:   GameRef{ID: g.ID, Name: g.Name, Slug: g.Slug},
		Votes:  repo.votes[review.ID],
	}
}

func (repo *memoryRepository) sorted(details []*Detail, order Sort) {
	sort.Slice(details, func(i, j int) bool {
		a, b := details[i], details[j]
		if order == SortTop && a.Votes.Score != b.Votes.Score {
			return a.Votes.Score > b.Votes.Score
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}

func (repo *memoryRepository) List(_ context.Context, filter Filter, limit, offset int) ([]*Detail, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	matched := []*Detail{}
	for _, r := range repo.reviews {
		if filter.GameID != nil && r.GameID != *filter.GameID {
			continue
		}
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(r.Content), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, repo.detail(r))
	}
	repo.sorted(matched, filter.Sort)

	total := len(matched)
	start := min(offset, total)
	return matched[start:min(start+limit, total)], total, nil
}

func (repo *memoryRepository) Get(_ context.Context, id int64) (*Detail, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	r, ok := repo.reviews[id]
	if !ok {
		return nil, apperr.NotFound("Review")
	}
	return repo.detail(r), nil
}

func (repo *memoryRepository) Create(_ context.Context, review *Review) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.games[review.GameID]; !ok {
		return apperr.NotFound("Game")
	}

	repo.nextID++
	review.ID = repo.nextID
	review.CreatedAt, review.UpdatedAt = repo.now(), repo.now()
	repo.reviews[review.ID] = *review
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, review *Review) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.reviews[review.ID]; !ok {
		return apperr.NotFound("Review")
	}
	review.UpdatedAt = repo.now()
	repo.reviews[review.ID] = *review
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.reviews[id]; !ok {
		return apperr.NotFound("Review")
	}
	delete(repo.reviews, id)
	delete(repo.votes, id)
	return nil
}

func (repo *memoryRepository) Exists(_ context.Context, id int64) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	_, ok := repo.reviews[id]
	return ok, nil
}

func (repo *memoryRepository) Trending(_ context.Context, since time.Time, limit int) ([]*Detail, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	matched := []*Detail{}
	for _, r := range repo.reviews {
		if !r.CreatedAt.Before(since) {
			matched = append(matched, repo.detail(r))
		}
	}
	repo.sorted(matched, SortTop)

	return matched[:min(limit, len(matched))], nil
}
