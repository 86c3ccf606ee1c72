// Copyright (c) 2026 RateUp. All rights reserved.

package game

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nifoox/rateup/internal/platform/validate"
	"github.com/nifoox/rateup/pkg/pointer"
	"github.com/nifoox/rateup/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListGames(context context.Context, filter Filter, limit, offset int) ([]*Game, int, error) {
	return service.repo.ListGames(context, filter, limit, offset)
}

func (service *Service) GetGame(context context.Context, id int64) (*Game, error) {
	return service.repo.GetGame(context, id)
}

// TopRated returns games ordered by average score with at least minReviews reviews.
func (service *Service) TopRated(context context.Context, limit, minReviews int) ([]*RatedGame, error) {
	return service.repo.TopRated(context, limit, max(minReviews, 1))
}

func (service *Service) CreateGame(context context.Context, game *Game) error {
	game.Name = strings.TrimSpace(game.Name)
	game.Slug = slug.From(game.Name)

	if err := validateGame(game); err != nil {
		return err
	}

	if err := service.repo.CreateGame(context, game); err != nil {
		return err
	}

	service.logger.Info("game_created", slog.Int64("game_id", game.ID), slog.String("slug", game.Slug))
	return nil
}

func (service *Service) UpdateGame(context context.Context, id int64, patch Patch) (*Game, error) {
	game, err := service.repo.GetGame(context, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		game.Name = strings.TrimSpace(*patch.Name)
		game.Slug = slug.From(game.Name)
	}
	if patch.Description != nil {
		game.Description = patch.Description
	}
	if patch.Genre != nil {
		game.Genre = patch.Genre
	}

	if err := validateGame(game); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateGame(context, game); err != nil {
		return nil, err
	}

	service.logger.Info("game_updated", slog.Int64("game_id", game.ID))
	return game, nil
}

func (service *Service) DeleteGame(context context.Context, id int64) error {
	if err := service.repo.DeleteGame(context, id); err != nil {
		return err
	}

	service.logger.Warn("game_deleted", slog.Int64("game_id", id))
	return nil
}

func validateGame(game *Game) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, game.Name).
		MaxLen(FieldName, game.Name, maxNameLength).
		Custom(FieldName, game.Name != "" && game.Slug == "", "Must contain at least one letter or digit")

	validator.MaxLen(FieldGenre, pointer.Val(game.Genre), maxGenreLength)
	validator.MaxLen(FieldDescription, pointer.Val(game.Description), maxDescriptionLength)

	return validator.Err()
}
