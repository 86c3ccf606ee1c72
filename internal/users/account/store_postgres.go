// Copyright (c) 2026 RateUp. All rights reserved.

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/platform/database/schema"
	"github.com/nifoox/rateup/internal/platform/dberr"
	"github.com/nifoox/rateup/internal/platform/sec"
	"github.com/nifoox/rateup/internal/users/auth"
)

// # Repository Implementations

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation for account administration.
func NewAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

// searchClause matches $1 against username or email; an empty $1 matches everything.
func searchClause() string {
	t := schema.Users
	return fmt.Sprintf(`($1 = '' OR %s ILIKE '%%' || $1 || '%%' OR %s ILIKE '%%' || $1 || '%%')`, t.Username, t.Email)
}

/*
List returns one page of accounts ordered by ID.

Parameters:
  - context: context.Context
  - filter: ListFilter

Returns:
  - []*auth.User: Hydrated entities
  - int: Total match count
  - error: Store failures
*/
func (repository *PostgresAccountRepository) List(context context.Context, filter ListFilter) ([]*auth.User, int, error) {
	t := schema.Users

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, t.Table, searchClause())

	var total int
	if err := repository.db.QueryRow(context, countQuery, filter.Search).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_users")
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s
		LIMIT $2 OFFSET $3`,
		auth.UserColumns(), t.Table, searchClause(), t.ID,
	)

	rows, err := repository.db.Query(context, query, filter.Search, filter.Limit(), filter.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]*auth.User, 0, filter.Limit())
	for rows.Next() {
		user, err := auth.ScanUser(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_users")
	}

	return users, total, nil
}

// FindByID retrieves one account, active or not.
func (repository *PostgresAccountRepository) FindByID(context context.Context, id int64) (*auth.User, error) {
	t := schema.Users
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, auth.UserColumns(), t.Table, t.ID)

	user, err := auth.ScanUser(repository.db.QueryRow(context, query, id))
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "find_account")
	}
	return user, nil
}

/*
Update writes every mutable column of user and refreshes its UpdatedAt.

Returns:
  - error: apperr.NotFound, CONFLICT on duplicate username/email, or store failures
*/
func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	t := schema.Users
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		t.Table,
		t.Username, t.Email, t.PasswordHash, t.Roles, t.Active, t.UpdatedAt,
		t.ID,
		t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		sec.RoleStrings(user.Roles),
		user.Active,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if dberr.IsNotFound(err) {
			return apperr.NotFound("User")
		}
		return dberr.WrapWith(err, "update_account", auth.UserConstraints)
	}
	return nil
}

// Deactivate clears the active flag of an account.
func (repository *PostgresAccountRepository) Deactivate(context context.Context, id int64) error {
	t := schema.Users
	query := fmt.Sprintf(`UPDATE %s SET %s = FALSE, %s = NOW() WHERE %s = $1`, t.Table, t.Active, t.UpdatedAt, t.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "deactivate_account")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// Activity aggregates the reviews of userID and the votes cast on them.
func (repository *PostgresAccountRepository) Activity(context context.Context, userID int64) (Activity, error) {
	r, v := schema.Reviews, schema.ReviewVotes
	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %s WHERE %s = $1),
			COUNT(v.%s) FILTER (WHERE v.%s = 1),
			COUNT(v.%s) FILTER (WHERE v.%s = -1)
		FROM %s r
		JOIN %s v ON v.%s = r.%s
		WHERE r.%s = $1`,
		r.Table, r.UserID,
		v.Value, v.Value,
		v.Value, v.Value,
		r.Table,
		v.Table, v.ReviewID, r.ID,
		r.UserID,
	)

	var activity Activity
	err := repository.db.QueryRow(context, query, userID).Scan(
		&activity.ReviewCount,
		&activity.Upvotes,
		&activity.Downvotes,
	)
	if err != nil {
		return Activity{}, dberr.Wrap(err, "account_activity")
	}
	return activity, nil
}
