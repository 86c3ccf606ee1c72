// Copyright (c) 2026 RateUp. All rights reserved.

package vote

import "context"

// # Repository Contracts

// Store persists votes. Implementations must be safe for concurrent use.
type Store interface {
	/*
		Upsert inserts the vote or, when (reviewID, userID) already has one,
		overwrites its value in the same atomic statement.

		Returns:
		  - *Vote: The row as stored
		  - error: apperr.NotFound when the review does not exist, or store failures
	*/
	Upsert(ctx context.Context, reviewID, userID int64, value Value) (*Vote, error)

	/*
		Delete removes the vote of userID on reviewID.

		Returns:
		  - bool: Whether a row existed
		  - error: Store failures
	*/
	Delete(ctx context.Context, reviewID, userID int64) (bool, error)

	// Summarize counts the current rows of reviewID.
	Summarize(ctx context.Context, reviewID int64) (Summary, error)

	// UserVote returns the value cast by userID on reviewID, or [None].
	UserVote(ctx context.Context, reviewID, userID int64) (Value, error)
}
