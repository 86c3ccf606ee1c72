// Copyright (c) 2026 RateUp. All rights reserved.

/*
Package home serves the landing page feeds: the best rated games and the
reviews that collected the most votes recently.

Both feeds are read-through cached. A cache failure never fails a request;
it is logged and the feed is read from the database.
*/
package home

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nifoox/rateup/internal/catalog/game"
	"github.com/nifoox/rateup/internal/platform/constants"
	"github.com/nifoox/rateup/internal/platform/validate"
	"github.com/nifoox/rateup/internal/social/review"
)

// # Contracts

// GameRanker lists games by average review score.
type GameRanker interface {
	TopRated(ctx context.Context, limit, minReviews int) ([]*game.RatedGame, error)
}

// ReviewRanker lists recent reviews by vote score.
type ReviewRanker interface {
	Trending(ctx context.Context, days, limit int) ([]*review.Detail, error)
}

// Field names for validation
const (
	FieldLimit      = "limit"
	FieldMinReviews = "minReviews"
	FieldDays       = "days"
)

// Service assembles the home feeds.
type Service struct {
	games   GameRanker
	reviews ReviewRanker
	cache   Cache
	logger  *slog.Logger
}

// NewService constructs a home [Service]. A nil cache disables caching.
func NewService(games GameRanker, reviews ReviewRanker, cache Cache, logger *slog.Logger) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &Service{games: games, reviews: reviews, cache: cache, logger: logger}
}

/*
TopGames returns the best rated games with at least minReviews reviews.

Parameters:
  - limit: 1..HomeMaxLimit, 0 selects HomeDefaultLimit
  - minReviews: 0 selects 1

Returns:
  - []*game.RatedGame: Highest average first
  - error: VALIDATION_ERROR or store failures
*/
func (service *Service) TopGames(ctx context.Context, limit, minReviews int) ([]*game.RatedGame, error) {
	if limit == 0 {
		limit = constants.HomeDefaultLimit
	}
	if minReviews == 0 {
		minReviews = 1
	}

	validator := &validate.Validator{}
	validator.Range(FieldLimit, limit, 1, constants.HomeMaxLimit)
	validator.Custom(FieldMinReviews, minReviews < 1, "must be at least 1")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s%d:%d", constants.RedisPrefixHomeTopGames, limit, minReviews)

	var games []*game.RatedGame
	if service.lookup(ctx, key, &games) {
		return games, nil
	}

	games, err := service.games.TopRated(ctx, limit, minReviews)
	if err != nil {
		return nil, fmt.Errorf("home_service_top_games_failed: %w", err)
	}

	service.store(ctx, key, games)
	return games, nil
}

// TrendingReviews returns the highest voted reviews written in the last days days.
func (service *Service) TrendingReviews(ctx context.Context, days, limit int) ([]*review.Detail, error) {
	if days == 0 {
		days = constants.TrendingDefaultDays
	}
	if limit == 0 {
		limit = constants.HomeDefaultLimit
	}

	validator := &validate.Validator{}
	validator.Range(FieldDays, days, 1, constants.TrendingMaxDays).
		Range(FieldLimit, limit, 1, constants.HomeMaxLimit)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s%d:%d", constants.RedisPrefixHomeTrendingReview, days, limit)

	var reviews []*review.Detail
	if service.lookup(ctx, key, &reviews) {
		return reviews, nil
	}

	reviews, err := service.reviews.Trending(ctx, days, limit)
	if err != nil {
		return nil, fmt.Errorf("home_service_trending_failed: %w", err)
	}

	service.store(ctx, key, reviews)
	return reviews, nil
}

func (service *Service) lookup(ctx context.Context, key string, target any) bool {
	hit, err := service.cache.Get(ctx, key, target)
	if err != nil {
		service.logger.Warn("home_cache_read_failed", slog.String("key", key), slog.Any("error", err))
		return false
	}
	return hit
}

func (service *Service) store(ctx context.Context, key string, value any) {
	if err := service.cache.Set(ctx, key, value); err != nil {
		service.logger.Warn("home_cache_write_failed", slog.String("key", key), slog.Any("error", err))
	}
}
