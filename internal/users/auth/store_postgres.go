// Copyright (c) 2026 RateUp. All rights reserved.

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/platform/database/schema"
	"github.com/nifoox/rateup/internal/platform/dberr"
	"github.com/nifoox/rateup/internal/platform/sec"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of [UserRepository].
func NewUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// UserConstraints maps the users unique keys to client-facing conflicts.
var UserConstraints = dberr.Constraints{
	schema.Users.UsernameKey: apperr.Conflict("Username is already taken"),
	schema.Users.EmailKey:    apperr.Conflict("Email is already registered"),
}

// UserColumns is the column list scanned by [ScanUser].
func UserColumns() string {
	t := schema.Users
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.Username, t.Email, t.PasswordHash, t.Roles, t.Active, t.CreatedAt, t.UpdatedAt)
}

// ScanUser reads one row selected with [UserColumns].
func ScanUser(row pgx.Row) (*User, error) {
	var roles []string
	user := &User{}

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&roles,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsed, ok := sec.ParseRoles(roles)
	if !ok {
		return nil, fmt.Errorf("user %d has an invalid role set %v", user.ID, roles)
	}
	user.Roles = parsed

	return user, nil
}

/*
Create persists a new credential into the users table.

Parameters:
  - context: context.Context
  - user: *User (ID and timestamps are filled from the inserted row)

Returns:
  - error: CONFLICT on duplicate username or email, or store failures
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	t := schema.Users
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s, %s`,
		t.Table, t.Username, t.Email, t.PasswordHash, t.Roles, t.Active,
		t.ID, t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		sec.RoleStrings(user.Roles),
		user.Active,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return dberr.WrapWith(err, "create_user", UserConstraints)
	}

	return nil
}

// FindByID retrieves a credential by its primary key.
func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	return repository.findOne(context, schema.Users.ID+" = $1", id, "User")
}

// FindByEmail retrieves a credential by email, case-insensitively. Stored
// emails are always lowercase, so only the argument is folded.
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findOne(context, schema.Users.Email+" = LOWER($1)", email, "User")
}

// FindByUsername retrieves a credential by its exact username.
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findOne(context, schema.Users.Username+" = $1", username, "User")
}

func (repository *PostgresUserRepository) findOne(context context.Context, where string, arg any, resource string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s`, UserColumns(), schema.Users.Table, where)

	user, err := ScanUser(repository.db.QueryRow(context, query, arg))
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound(resource)
		}
		return nil, dberr.Wrap(err, "find_user")
	}

	return user, nil
}
