// Copyright (c) 2026 RateUp. All rights reserved.

/*
Package vote maintains the up/down votes cast on reviews.

A vote is a single row keyed by (review, user) whose value is +1 or -1.
Absence of a row means "no vote". The [Ledger] owns two invariants:

  - At most one row per (review, user), even under concurrent writers.
    The [Store] guarantees it with a single conflict-resolving upsert; the
    ledger never reads before writing and never takes a lock.
  - A [Summary] is always recomputed from the rows, never kept as a counter.
*/
package vote

import (
	"time"

	"github.com/nifoox/rateup/internal/platform/apperr"
)

// # Domain Entities

// Value is the direction of a vote.
type Value int8

const (
	// None is never stored; it reports the absence of a vote.
	None Value = 0
	Up   Value = 1
	Down Value = -1
)

// ParseValue converts a wire integer into a [Value]. Only 1 and -1 are accepted.
func ParseValue(raw int) (Value, error) {
	switch raw {
	case int(Up):
		return Up, nil
	case int(Down):
		return Down, nil
	default:
		return None, apperr.InvalidData("Vote value must be 1 or -1")
	}
}

// Vote is a single persisted vote row.
type Vote struct {
	ReviewID  int64     `json:"reviewId"`
	UserID    int64     `json:"userId"`
	Value     Value     `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary is the tally of a review's votes.
type Summary struct {
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
	Score     int64 `json:"score"`
}

// NewSummary builds a summary from raw counts; the score is always derived.
func NewSummary(upvotes, downvotes int64) Summary {
	return Summary{
		Upvotes:   upvotes,
		Downvotes: downvotes,
		Score:     upvotes - downvotes,
	}
}
