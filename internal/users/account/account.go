// Copyright (c) 2026 RateUp. All rights reserved.

/*
Package account handles account administration and public profiles.

Administrators list, create, re-role and deactivate accounts. Every caller
may edit their own account and read anyone's public profile, which carries
a reputation aggregated over the votes received on their reviews.

# Architecture

  - Entities: [PublicProfile], [Reputation].
  - Domain: This package depends on the auth package for the stored
    credential and on the vote package for the tally shape.
  - Security: Owner and role rules are evaluated through authz.
*/
package account

import (
	"context"
	"time"

	"github.com/nifoox/rateup/internal/social/vote"
	"github.com/nifoox/rateup/internal/users/auth"
	"github.com/nifoox/rateup/pkg/pagination"
)

// # Domain Entities

// Reputation is the tally of votes received on all reviews of a user.
type Reputation struct {
	vote.Summary

	// LikesRate is upvotes / (upvotes + downvotes), or 0 with no votes.
	LikesRate float64 `json:"likesRate"`
}

// NewReputation derives the score and the likes rate from raw counts.
func NewReputation(upvotes, downvotes int64) Reputation {
	reputation := Reputation{Summary: vote.NewSummary(upvotes, downvotes)}
	if total := upvotes + downvotes; total > 0 {
		reputation.LikesRate = float64(upvotes) / float64(total)
	}
	return reputation
}

// PublicProfile is what anyone may see about an account.
type PublicProfile struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	MemberSince time.Time  `json:"memberSince"`
	ReviewCount int64      `json:"reviewCount"`
	Reputation  Reputation `json:"reputation"`
}

// Activity holds the raw counts behind a [PublicProfile].
type Activity struct {
	ReviewCount int64
	Upvotes     int64
	Downvotes   int64
}

// ListFilter narrows the admin account listing.
type ListFilter struct {
	// Search matches username or email, case-insensitively.
	Search string
	pagination.Params
}

// # Repository Contracts

// AccountRepository defines the persistence contract for account administration.
type AccountRepository interface {
	/*
		List returns one page of accounts and the total match count.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter

		Returns:
		  - []*auth.User: Page of accounts ordered by ID
		  - int: Total number of matching accounts
		  - error: Store failures
	*/
	List(context context.Context, filter ListFilter) ([]*auth.User, int, error)

	/*
		FindByID retrieves a stored credential by its ID.

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or store failures
	*/
	FindByID(context context.Context, id int64) (*auth.User, error)

	/*
		Update writes the mutable columns of an existing account.

		Returns:
		  - error: apperr.NotFound, CONFLICT on duplicate username/email, or store failures
	*/
	Update(context context.Context, user *auth.User) error

	// Deactivate clears the active flag. It returns apperr.NotFound for an unknown id.
	Deactivate(context context.Context, id int64) error

	// Activity counts the reviews written by userID and the votes they received.
	Activity(context context.Context, userID int64) (Activity, error)
}
