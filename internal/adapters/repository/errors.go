package repository

import "errors"

var (
	// ErrNotFound indicates the team is not tracked.
	ErrNotFound = errors.New("team not found")
	// ErrInvalidLimit indicates a non-positive limit.
	ErrInvalidLimit = errors.New("limit must be positive")
)
