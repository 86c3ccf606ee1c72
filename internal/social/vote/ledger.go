// Copyright (c) 2026 RateUp. All rights reserved.

package vote

import (
	"context"
	"fmt"
	"log/slog"
)

// # Service Layer

// Ledger applies vote changes and reports the resulting tally.
//
// Callers validate the vote value ([ParseValue]) and authorize the caller
// before reaching the ledger.
type Ledger struct {
	store  Store
	logger *slog.Logger
}

// NewLedger constructs a [Ledger] over store.
func NewLedger(store Store, logger *slog.Logger) *Ledger {
	return &Ledger{store: store, logger: logger}
}

/*
Cast records the vote of userID on reviewID and returns the new tally.

Description: Casting the same value again leaves a single unchanged row.
Casting the opposite value overwrites the row. Concurrent casts on the same
pair are resolved by the store's upsert.

Returns:
  - Summary: Recomputed tally of the review
  - error: apperr.NotFound for a missing review, or store failures
*/
func (ledger *Ledger) Cast(ctx context.Context, reviewID, userID int64, value Value) (Summary, error) {
	if _, err := ledger.store.Upsert(ctx, reviewID, userID, value); err != nil {
		return Summary{}, fmt.Errorf("vote_ledger_cast_failed: %w", err)
	}

	ledger.logger.InfoContext(ctx, "vote_cast",
		slog.Int64("review_id", reviewID),
		slog.Int64("user_id", userID),
		slog.Int("value", int(value)),
	)

	return ledger.Summarize(ctx, reviewID)
}

/*
Retract removes the vote of userID on reviewID.

Description: Retracting a vote that does not exist is a no-op and still
returns the current tally.
*/
func (ledger *Ledger) Retract(ctx context.Context, reviewID, userID int64) (Summary, error) {
	deleted, err := ledger.store.Delete(ctx, reviewID, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("vote_ledger_retract_failed: %w", err)
	}

	ledger.logger.InfoContext(ctx, "vote_retracted",
		slog.Int64("review_id", reviewID),
		slog.Int64("user_id", userID),
		slog.Bool("deleted", deleted),
	)

	return ledger.Summarize(ctx, reviewID)
}

// Summarize recomputes the tally of reviewID from its vote rows.
func (ledger *Ledger) Summarize(ctx context.Context, reviewID int64) (Summary, error) {
	summary, err := ledger.store.Summarize(ctx, reviewID)
	if err != nil {
		return Summary{}, fmt.Errorf("vote_ledger_summarize_failed: %w", err)
	}
	return summary, nil
}

// UserVote returns the vote userID currently holds on reviewID, or [None].
func (ledger *Ledger) UserVote(ctx context.Context, reviewID, userID int64) (Value, error) {
	value, err := ledger.store.UserVote(ctx, reviewID, userID)
	if err != nil {
		return None, fmt.Errorf("vote_ledger_user_vote_failed: %w", err)
	}
	return value, nil
}
