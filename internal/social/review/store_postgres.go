// Copyright (c) 2026 RateUp. All rights reserved.

package review

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/platform/database/schema"
	"github.com/nifoox/rateup/internal/platform/dberr"
	"github.com/nifoox/rateup/internal/social/vote"
)

// PostgresRepository implements [Repository] on the reviews table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL-backed review store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var reviewConstraints = dberr.Constraints{
	schema.Reviews.GameFKey: apperr.NotFound("Game"),
}

/*
selectDetails builds the detail projection: the review row, its author, its
game and a per-review vote tally from a lateral aggregate.
*/
func selectDetails() string {
	r, u, g, v := schema.Reviews, schema.Users, schema.Games, schema.ReviewVotes
	return fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s,
		       u.%s, u.%s, g.%s, g.%s, g.%s,
		       tally.up, tally.down
		FROM %s r
		JOIN %s u ON u.%s = r.%s
		JOIN %s g ON g.%s = r.%s
		LEFT JOIN LATERAL (
			SELECT COUNT(*) FILTER (WHERE %s = 1) AS up,
			       COUNT(*) FILTER (WHERE %s = -1) AS down
			FROM %s WHERE %s = r.%s
		) tally ON TRUE`,
		r.ID, r.GameID, r.UserID, r.Content, r.Score, r.CreatedAt, r.UpdatedAt,
		u.ID, u.Username, g.ID, g.Name, g.Slug,
		r.Table,
		u.Table, u.ID, r.UserID,
		g.Table, g.ID, r.GameID,
		v.Value, v.Value,
		v.Table, v.ReviewID, r.ID,
	)
}

func scanDetail(row pgx.Row) (*Detail, error) {
	detail := &Detail{}
	var up, down int64
	err := row.Scan(
		&detail.ID, &detail.GameID, &detail.UserID, &detail.Content, &detail.Score, &detail.CreatedAt, &detail.UpdatedAt,
		&detail.Author.ID, &detail.Author.Username,
		&detail.Game.ID, &detail.Game.Name, &detail.Game.Slug,
		&up, &down,
	)
	detail.Votes = vote.NewSummary(up, down)
	return detail, err
}

func collectDetails(rows pgx.Rows) ([]*Detail, error) {
	defer rows.Close()

	details := []*Detail{}
	for rows.Next() {
		detail, err := scanDetail(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_review")
		}
		details = append(details, detail)
	}
	return details, dberr.Wrap(rows.Err(), "iterate_reviews")
}

func orderClause(sort Sort) string {
	r := schema.Reviews
	if sort == SortTop {
		return fmt.Sprintf(" ORDER BY (tally.up - tally.down) DESC, r.%s DESC, r.%s DESC", r.CreatedAt, r.ID)
	}
	return fmt.Sprintf(" ORDER BY r.%s DESC, r.%s DESC", r.CreatedAt, r.ID)
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Detail, int, error) {
	r := schema.Reviews

	conditions := []string{"TRUE"}
	args := []any{}

	if filter.GameID != nil {
		args = append(args, *filter.GameID)
		conditions = append(conditions, fmt.Sprintf("r.%s = $%d", r.GameID, len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("r.%s = $%d", r.UserID, len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("r.%s ILIKE $%d", r.Content, len(args)))
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s r`, r.Table) + where
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	query := selectDetails() + where + orderClause(filter.Sort) +
		" LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}

	details, err := collectDetails(rows)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (repository *PostgresRepository) Get(context context.Context, id int64) (*Detail, error) {
	query := selectDetails() + fmt.Sprintf(" WHERE r.%s = $1", schema.Reviews.ID)

	detail, err := scanDetail(repository.db.QueryRow(context, query, id))
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Review")
		}
		return nil, dberr.Wrap(err, "get_review")
	}
	return detail, nil
}

func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	r := schema.Reviews
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s
	`,
		r.Table, r.GameID, r.UserID, r.Content, r.Score,
		r.ID, r.CreatedAt, r.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, review.GameID, review.UserID, review.Content, review.Score).
		Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	return dberr.WrapWith(err, "create_review", reviewConstraints)
}

func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	r := schema.Reviews
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		r.Table, r.Content, r.Score, r.UpdatedAt,
		r.ID,
		r.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, review.ID, review.Content, review.Score).Scan(&review.UpdatedAt)
	if dberr.IsNotFound(err) {
		return apperr.NotFound("Review")
	}
	return dberr.Wrap(err, "update_review")
}

// Delete removes a review. Comments and votes go with it through ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	r := schema.Reviews
	cmd, err := repository.db.Exec(context, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, r.Table, r.ID), id)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

func (repository *PostgresRepository) Exists(context context.Context, id int64) (bool, error) {
	r := schema.Reviews
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, r.Table, r.ID)
	if err := repository.db.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "review_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) Trending(context context.Context, since time.Time, limit int) ([]*Detail, error) {
	query := selectDetails() +
		fmt.Sprintf(" WHERE r.%s >= $1", schema.Reviews.CreatedAt) +
		orderClause(SortTop) +
		" LIMIT $2"

	rows, err := repository.db.Query(context, query, since, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "trending_reviews")
	}
	return collectDetails(rows)
}
