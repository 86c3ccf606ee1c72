// Copyright (c) 2026 RateUp. All rights reserved.

package game

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nifoox/rateup/internal/platform/apperr"
)

type memoryRepository struct {
	mu     sync.Mutex
	nextID int64
	games  map[int64]Game
	scores map[int64][]int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{games: make(map[int64]Game), scores: make(map[int64][]int)}
}

func (repo *memoryRepository) conflict(g *Game) error {
	for id, existing := range repo.games {
		if id != g.ID && (existing.Name == g.Name || existing.Slug == g.Slug) {
			return apperr.Conflict("A game with this name already exists")
		}
	}
	return nil
}

func (repo *memoryRepository) ListGames(_ context.Context, f Filter, limit, offset int) ([]*Game, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	matched := []*Game{}
	for _, g := range repo.games {
		if f.Search != "" && !strings.Contains(strings.ToLower(g.Name), strings.ToLower(f.Search)) {
			continue
		}
		if f.Genre != "" && (g.Genre == nil || !strings.EqualFold(*g.Genre, f.Genre)) {
			continue
		}
		copied := g
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := len(matched)
	start := min(offset, total)
	end := min(start+limit, total)
	return matched[start:end], total, nil
}

func (repo *memoryRepository) GetGame(_ context.Context, id int64) (*Game, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	g, ok := repo.games[id]
	if !ok {
		return nil, apperr.NotFound("Game")
	}
	return &g, nil
}

func (repo *memoryRepository) CreateGame(_ context.Context, g *Game) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if err := repo.conflict(g); err != nil {
		return err
	}
	repo.nextID++
	g.ID = repo.nextID
	g.CreatedAt, g.UpdatedAt = time.Now(), time.Now()
	repo.games[g.ID] = *g
	return nil
}

func (repo *memoryRepository) UpdateGame(_ context.Context, g *Game) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.games[g.ID]; !ok {
		return apperr.NotFound("Game")
	}
	if err := repo.conflict(g); err != nil {
		return err
	}
	g.UpdatedAt = time.Now()
	repo.games[g.ID] = *g
	return nil
}

func (repo *memoryRepository) DeleteGame(_ context.Context, id int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.games[id]; !ok {
		return apperr.NotFound("Game")
	}
	delete(repo.games, id)
	delete(repo.scores, id)
	return nil
}

func (repo *memoryRepository) TopRated(_ context.Context, limit int, minReviews int) ([]*RatedGame, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	rated := []*RatedGame{}
	for id, scores := range repo.scores {
		if len(scores) < minReviews {
			continue
		}
		sum := 0
		for _, score := range scores {
			sum += score
		}
		rated = append(rated, &RatedGame{
			Game:         repo.games[id],
			AverageScore: float64(sum) / float64(len(scores)),
			ReviewCount:  int64(len(scores)),
		})
	}
	sort.Slice(rated, func(i, j int) bool {
		if rated[i].AverageScore != rated[j].AverageScore {
			return rated[i].AverageScore > rated[j].AverageScore
		}
		return rated[i].ID < rated[j].ID
	})

	return rated[:min(limit, len(rated))], nil
}
