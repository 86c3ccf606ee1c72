// Copyright (c) 2026 RateUp. All rights reserved.

package game

import "context"

type Repository interface {
	ListGames(context context.Context, f Filter, limit, offset int) ([]*Game, int, error)
	GetGame(context context.Context, id int64) (*Game, error)
	CreateGame(context context.Context, g *Game) error
	UpdateGame(context context.Context, g *Game) error
	DeleteGame(context context.Context, id int64) error
	TopRated(context context.Context, limit int, minReviews int) ([]*RatedGame, error)
}
