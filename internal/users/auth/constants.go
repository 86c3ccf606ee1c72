// Copyright (c) 2026 RateUp. All rights reserved.

package auth

// # Credential Constraints

const (
	// MinUsernameLength and MaxUsernameLength bound a username.
	MinUsernameLength = 3
	MaxUsernameLength = 50

	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 8

	// MaxPasswordLength caps the input fed to the key derivation.
	MaxPasswordLength = 128

	// MaxEmailLength matches the users.email column.
	MaxEmailLength = 255
)
