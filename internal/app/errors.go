package app

import "errors"

var (
	// ErrQueueFull indicates backpressure: the match queue rejected the
	// fixture and it should be retried later.
	ErrQueueFull = errors.New("match queue full")
	// ErrInvalidMatch indicates the submitted match is missing required
	// identifiers.
	ErrInvalidMatch = errors.New("invalid match")
	// ErrNotStarted indicates the service was used before Start.
	ErrNotStarted = errors.New("service not started")
)
