// Copyright (c) 2026 RateUp. All rights reserved.

// Package comment manages the discussion thread attached to each review.
package comment

import (
	"context"
	"time"
)

// Comment is a reply posted under a review.
type Comment struct {
	ID        int64     `json:"id"`
	ReviewID  int64     `json:"reviewId"`
	UserID    int64     `json:"userId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FieldContent is the validated payload field.
const FieldContent = "content"

const maxContentLength = 2000

// Repository is the persistence contract for comments.
type Repository interface {
	List(ctx context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error)
	Get(ctx context.Context, id int64) (*Comment, error)
	Create(ctx context.Context, c *Comment) error
	Update(ctx context.Context, c *Comment) error
	Delete(ctx context.Context, id int64) error
}

// ReviewLookup reports whether a review exists.
type ReviewLookup interface {
	Exists(ctx context.Context, reviewID int64) (bool, error)
}
