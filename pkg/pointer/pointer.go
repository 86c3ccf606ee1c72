// Copyright (c) 2026 RateUp. All rights reserved.

// Package pointer has generic helpers for the optional fields of patches and
// nullable columns.
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, or returns the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback dereferences p, or returns current when p is nil. Patch
// application uses it to keep fields the caller left out.
func Fallback[T any](p *T, current T) T {
	if p == nil {
		return current
	}
	return *p
}
