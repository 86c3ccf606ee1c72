// Copyright (c) 2026 RateUp. All rights reserved.

package vote

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/platform/database/schema"
	"github.com/nifoox/rateup/internal/platform/dberr"
)

// PostgresStore implements [Store] on the review_votes table.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed vote store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

var voteConstraints = dberr.Constraints{
	schema.ReviewVotes.ReviewFKey: apperr.NotFound("Review"),
}

// Upsert relies on the (review_id, user_id) primary key: the conflict
// clause turns a second cast into an overwrite of the same row.
func (repository *PostgresStore) Upsert(context context.Context, reviewID, userID int64, value Value) (*Vote, error) {
	t := schema.ReviewVotes
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = NOW()
		RETURNING %s, %s, %s, %s, %s
	`,
		t.Table, t.ReviewID, t.UserID, t.Value,
		t.ReviewID, t.UserID,
		t.Value, t.Value, t.UpdatedAt,
		t.ReviewID, t.UserID, t.Value, t.CreatedAt, t.UpdatedAt,
	)

	var stored int16
	vote := &Vote{}
	err := repository.db.QueryRow(context, query, reviewID, userID, int16(value)).Scan(
		&vote.ReviewID, &vote.UserID, &stored, &vote.CreatedAt, &vote.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.WrapWith(err, "upsert_vote", voteConstraints)
	}

	vote.Value = Value(stored)
	return vote, nil
}

func (repository *PostgresStore) Delete(context context.Context, reviewID, userID int64) (bool, error) {
	t := schema.ReviewVotes
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, t.Table, t.ReviewID, t.UserID)

	cmd, err := repository.db.Exec(context, query, reviewID, userID)
	if err != nil {
		return false, dberr.Wrap(err, "delete_vote")
	}

	return cmd.RowsAffected() > 0, nil
}

func (repository *PostgresStore) Summarize(context context.Context, reviewID int64) (Summary, error) {
	t := schema.ReviewVotes
	query := fmt.Sprintf(`
		SELECT
			COUNT(*) FILTER (WHERE %s = 1),
			COUNT(*) FILTER (WHERE %s = -1)
		FROM %s
		WHERE %s = $1
	`, t.Value, t.Value, t.Table, t.ReviewID)

	var upvotes, downvotes int64
	if err := repository.db.QueryRow(context, query, reviewID).Scan(&upvotes, &downvotes); err != nil {
		return Summary{}, dberr.Wrap(err, "summarize_votes")
	}

	return NewSummary(upvotes, downvotes), nil
}

func (repository *PostgresStore) UserVote(context context.Context, reviewID, userID int64) (Value, error) {
	t := schema.ReviewVotes
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`, t.Value, t.Table, t.ReviewID, t.UserID)

	var stored int16
	err := repository.db.QueryRow(context, query, reviewID, userID).Scan(&stored)
	if errors.Is(err, pgx.ErrNoRows) {
		return None, nil
	}
	if err != nil {
		return None, dberr.Wrap(err, "get_user_vote")
	}

	return Value(stored), nil
}
