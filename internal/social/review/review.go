// Copyright (c) 2026 RateUp. All rights reserved.

/*
Package review manages the reviews users write about games.

A review is owned by its author: only the author or an administrator may
edit or delete it. Reads are public and carry the author, the game and a
vote tally. The "full" view adds the first page of comments.
*/
package review

import (
	"context"
	"time"

	"github.com/nifoox/rateup/internal/social/comment"
	"github.com/nifoox/rateup/internal/social/vote"
)

// # Domain Entities

// Review is a scored opinion about a game.
type Review struct {
	ID        int64     `json:"id"`
	GameID    int64     `json:"gameId"`
	UserID    int64     `json:"userId"`
	Content   string    `json:"content"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Author is the public identity of a review's writer.
type Author struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// GameRef identifies the reviewed game.
type GameRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Detail is a review with its author, game and vote tally.
type Detail struct {
	Review
	Author Author       `json:"author"`
	Game   GameRef      `json:"game"`
	Votes  vote.Summary `json:"votes"`
}

// Full is a [Detail] with the first page of its comments.
type Full struct {
	Detail
	Comments     []*comment.Comment `json:"comments"`
	CommentCount int                `json:"commentCount"`
}

// Sort orders a review listing.
type Sort string

const (
	SortNew Sort = "new" // Newest first
	SortTop Sort = "top" // Highest vote score first
)

// Filter narrows a review listing. Nil IDs and an empty search match everything.
type Filter struct {
	GameID *int64
	UserID *int64
	Search string
	Sort   Sort
}

// CreateInput is the payload of a new review.
type CreateInput struct {
	GameID  int64
	Content string
	Score   int
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Content *string
	Score   *int
}

// Field names for validation
const (
	FieldGameID  = "gameId"
	FieldContent = "content"
	FieldScore   = "score"
	FieldSort    = "sort"
)

const (
	MinScore         = 1
	MaxScore         = 5
	maxContentLength = 10000
)

// # Repository Contracts

// Repository is the persistence contract for reviews.
type Repository interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Detail, int, error)
	Get(ctx context.Context, id int64) (*Detail, error)
	Create(ctx context.Context, review *Review) error
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)

	// Trending returns reviews created at or after since, highest vote score first.
	Trending(ctx context.Context, since time.Time, limit int) ([]*Detail, error)
}
