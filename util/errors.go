// Package util provides utility functions for the xkcdfs filesystem.
package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Lookup errors
	ErrNotFound          = errors.New("not found")
	ErrInvalidIdentifier = errors.New("identifier is not an integer")

	// Request errors
	ErrIO           = errors.New("input/output error")
	ErrHandlerPanic = errors.New("handler panicked")

	// Route table errors
	ErrInvalidPattern = errors.New("invalid path pattern")
	ErrDuplicateRoute = errors.New("duplicate route")
)
