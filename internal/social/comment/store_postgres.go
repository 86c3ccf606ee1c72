// Copyright (c) 2026 RateUp. All rights reserved.

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/platform/database/schema"
	"github.com/nifoox/rateup/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on review_comments.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL-backed comment store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var commentConstraints = dberr.Constraints{
	schema.ReviewComments.ReviewFKey: apperr.NotFound("Review"),
}

// selectComments joins the author's username onto every comment row.
func selectComments(where string) string {
	c, u := schema.ReviewComments, schema.Users
	return fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, u.%s, c.%s, c.%s, c.%s
		FROM %s c
		JOIN %s u ON u.%s = c.%s
		WHERE %s`,
		c.ID, c.ReviewID, c.UserID, u.Username, c.Content, c.CreatedAt, c.UpdatedAt,
		c.Table,
		u.Table, u.ID, c.UserID,
		where,
	)
}

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(
		&comment.ID, &comment.ReviewID, &comment.UserID, &comment.Author,
		&comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
	)
	return comment, err
}

func (repository *PostgresRepository) List(context context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	c := schema.ReviewComments

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, c.Table, c.ReviewID)
	if err := repository.db.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	query := selectComments("c."+c.ReviewID+" = $1") +
		fmt.Sprintf(" ORDER BY c.%s ASC, c.%s ASC LIMIT $2 OFFSET $3", c.CreatedAt, c.ID)

	rows, err := repository.db.Query(context, query, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, total, dberr.Wrap(rows.Err(), "iterate_comments")
}

func (repository *PostgresRepository) Get(context context.Context, id int64) (*Comment, error) {
	comment, err := scanComment(repository.db.QueryRow(context, selectComments("c."+schema.ReviewComments.ID+" = $1"), id))
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, dberr.Wrap(err, "get_comment")
	}
	return comment, nil
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	c, u := schema.ReviewComments, schema.Users
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s, %s, (SELECT %s FROM %s WHERE %s = $2)`,
		c.Table, c.ReviewID, c.UserID, c.Content,
		c.ID, c.CreatedAt, c.UpdatedAt, u.Username, u.Table, u.ID,
	)

	err := repository.db.QueryRow(context, query, comment.ReviewID, comment.UserID, comment.Content).Scan(
		&comment.ID, &comment.CreatedAt, &comment.UpdatedAt, &comment.Author,
	)
	return dberr.WrapWith(err, "create_comment", commentConstraints)
}

func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	c := schema.ReviewComments
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 RETURNING %s`,
		c.Table, c.Content, c.UpdatedAt, c.ID, c.UpdatedAt)

	err := repository.db.QueryRow(context, query, comment.ID, comment.Content).Scan(&comment.UpdatedAt)
	if dberr.IsNotFound(err) {
		return apperr.NotFound("Comment")
	}
	return dberr.Wrap(err, "update_comment")
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	c := schema.ReviewComments
	cmd, err := repository.db.Exec(context, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, c.Table, c.ID), id)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}
