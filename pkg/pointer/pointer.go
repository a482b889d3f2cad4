// Copyright (c) 2026 BoiBritto. All rights reserved.

// Package pointer provides small generic helpers for working with pointers.
package pointer

// To returns a pointer to the provided value.
// It is useful when you need to pass a primitive value to a function or struct field
// that expects a pointer (e.g. pointer.To("something")).
func To[T any](v T) *T {
	return &v
}
