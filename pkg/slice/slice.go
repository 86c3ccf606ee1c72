// Copyright (c) 2026 RateUp. All rights reserved.

/*
Package slice complements the standard [slices] package with generic
transformation helpers.
*/
package slice

// Map applies transform to every element of input.
//
// The result is never nil, so an empty input still encodes as a JSON array.
func Map[T any, U any](input []T, transform func(T) U) []U {
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}
