// Copyright (c) 2026 RateUp. All rights reserved.

package home

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nifoox/rateup/internal/catalog/game"
	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/platform/constants"
	"github.com/nifoox/rateup/internal/social/review"
)

// memoryCache round-trips values through JSON like the Redis cache does.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	err     error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (cache *memoryCache) Get(_ context.Context, key string, target any) (bool, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cache.err != nil {
		return false, cache.err
	}
	raw, ok := cache.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, target)
}

func (cache *memoryCache) Set(_ context.Context, key string, value any) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cache.err != nil {
		return cache.err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	cache.entries[key] = raw
	return nil
}

type countingRanker struct {
	gameCalls   int
	reviewCalls int
	lastLimit   int
	lastMin     int
	lastDays    int
}

func (ranker *countingRanker) TopRated(_ context.Context, limit, minReviews int) ([]*game.RatedGame, error) {
	ranker.gameCalls++
	ranker.lastLimit, ranker.lastMin = limit, minReviews
	return []*game.RatedGame{{Game: game.Game{ID: 1, Name: "Celeste"}, AverageScore: 4.5, ReviewCount: 2}}, nil
}

func (ranker *countingRanker) Trending(_ context.Context, days, limit int) ([]*review.Detail, error) {
	ranker.reviewCalls++
	ranker.lastDays, ranker.lastLimit = days, limit
	return []*review.Detail{{Review: review.Review{ID: 7, Content: "wow"}}}, nil
}

func newTestService(cache Cache) (*Service, *countingRanker) {
	ranker := &countingRanker{}
	return NewService(ranker, ranker, cache, slog.New(slog.NewTextHandler(io.Discard, nil))), ranker
}

func TestTopGames_ReadThrough(t *testing.T) {
	service, ranker := newTestService(newMemoryCache())
	ctx := context.Background()

	first, err := service.TopGames(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, constants.HomeDefaultLimit, ranker.lastLimit)
	assert.Equal(t, 1, ranker.lastMin)

	second, err := service.TopGames(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, ranker.gameCalls)
	assert.Equal(t, first[0].Name, second[0].Name)
	assert.InDelta(t, 4.5, second[0].AverageScore, 0.0001)

	// A different parameter set is a different entry
	_, err = service.TopGames(ctx, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, ranker.gameCalls)
}

func TestTrendingReviews_ReadThrough(t *testing.T) {
	service, ranker := newTestService(newMemoryCache())
	ctx := context.Background()

	_, err := service.TrendingReviews(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, constants.TrendingDefaultDays, ranker.lastDays)

	reviews, err := service.TrendingReviews(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, ranker.reviewCalls)
	require.Len(t, reviews, 1)
	assert.Equal(t, int64(7), reviews[0].ID)
}

func TestFeeds_CacheFailureFallsThrough(t *testing.T) {
	cache := newMemoryCache()
	cache.err = errors.New("connection refused")
	service, ranker := newTestService(cache)
	ctx := context.Background()

	games, err := service.TopGames(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, games, 1)

	_, err = service.TopGames(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, ranker.gameCalls)
}

func TestFeeds_NilCacheDisablesCaching(t *testing.T) {
	service, ranker := newTestService(nil)
	ctx := context.Background()

	for range 2 {
		_, err := service.TrendingReviews(ctx, 3, 4)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, ranker.reviewCalls)
}

func TestFeeds_Bounds(t *testing.T) {
	service, _ := newTestService(NopCache{})
	ctx := context.Background()

	_, err := service.TopGames(ctx, constants.HomeMaxLimit+1, 0)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	_, err = service.TopGames(ctx, 10, -1)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	_, err = service.TrendingReviews(ctx, constants.TrendingMaxDays+1, 0)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	_, err = service.TrendingReviews(ctx, -2, 0)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestHandler_Feeds(t *testing.T) {
	service, ranker := newTestService(NopCache{})

	router := chi.NewRouter()
	router.Route("/home", NewHandler(service).RegisterRoutes)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/home/top-games?limit=3&minReviews=2", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 3, ranker.lastLimit)
	assert.Equal(t, 2, ranker.lastMin)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/home/trending-reviews?days=14", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 14, ranker.lastDays)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/home/trending-reviews?days=90", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
