// Copyright (c) 2026 RateUp. All rights reserved.

package sec

import "github.com/nifoox/rateup/pkg/slice"

// # User Roles

// Role is an authorization tag granted to a credential. The set is closed.
type Role string

const (
	// Default role for registered users
	RoleUser Role = "USER"

	// Administrative override: passes every ownership check
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole converts a raw tag into a [Role].
func ParseRole(raw string) (Role, bool) {
	role := Role(raw)
	return role, role.Valid()
}

// ParseRoles converts raw tags into roles. It fails on the first unknown tag.
func ParseRoles(raw []string) ([]Role, bool) {
	roles := make([]Role, 0, len(raw))
	for _, tag := range raw {
		role, ok := ParseRole(tag)
		if !ok {
			return nil, false
		}
		roles = append(roles, role)
	}
	return roles, true
}

// HasRole reports whether target is present in roles.
func HasRole(roles []Role, target Role) bool {
	for _, role := range roles {
		if role == target {
			return true
		}
	}
	return false
}

// RoleStrings returns the wire form of roles.
func RoleStrings(roles []Role) []string {
	return slice.Map(roles, func(role Role) string { return string(role) })
}
