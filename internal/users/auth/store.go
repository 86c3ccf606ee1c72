// Copyright (c) 2026 RateUp. All rights reserved.

package auth

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for stored credentials.
//
// Lookups return an apperr NOT_FOUND error when no row matches. Any other
// error is a store failure and must be propagated as is.
type UserRepository interface {

	/*
		FindByID returns the credential with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: NOT_FOUND or store failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByEmail returns the credential with the given email, compared
		case-insensitively.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: NOT_FOUND or store failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the credential with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: NOT_FOUND or store failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new credential and fills its ID and timestamps.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: CONFLICT on a duplicate username or email, or store failures
	*/
	Create(context context.Context, user *User) error
}
