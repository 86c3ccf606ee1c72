// Copyright (c) 2026 RateUp. All rights reserved.

// Package game manages the catalog of games that reviews are written about.
package game

import "time"

// Game is a catalog entry. Name and Slug are unique.
type Game struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	Genre       *string   `json:"genre"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RatedGame is a game with its review statistics, used by the home feed.
type RatedGame struct {
	Game
	AverageScore float64 `json:"averageScore"`
	ReviewCount  int64   `json:"reviewCount"`
}

// Filter holds the parameters for a paginated game search.
type Filter struct {
	Search string // ILIKE against name
	Genre  string // Exact, case-insensitive
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Genre       *string `json:"genre"`
}

// Global field names for validation
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldGenre       = "genre"
)

const (
	maxNameLength        = 255
	maxGenreLength       = 100
	maxDescriptionLength = 5000
)
