// Copyright (c) 2026 RateUp. All rights reserved.

/*
Package auth implements credential storage and the login flow.

It defines the stored credential ([User]), the client-safe view of it
([Profile]) and the [Service] that turns an identifier and a password into
a signed session token.

# Architecture

  - Service: Login, Register, Me and the startup admin seed.
  - Repository: [UserRepository], implemented on PostgreSQL.
  - Security: Password hashing and token signing come from the sec package
    behind small interfaces, so tests can run with cheap parameters.
*/
package auth

import (
	"time"

	"github.com/nifoox/rateup/internal/platform/sec"
)

// # Domain Entities

// User is a stored credential.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Roles        []sec.Role `json:"roles"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Profile is the private view of a [User] returned to its owner and to admins.
// It never carries the password hash.
type Profile struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Roles     []sec.Role `json:"roles"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Profile strips the credential down to its safe view.
func (user *User) Profile() *Profile {
	return &Profile{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Roles:     user.Roles,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// # Field Identifiers

// Field names used in validation errors of the authentication endpoints.
const (
	FieldIdentifier = "identifier"
	FieldUsername   = "username"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldRoles      = "roles"
)
