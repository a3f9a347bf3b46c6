package repository

import "errors"

// Sentinel kinds for event store errors.
var (
	ErrNotFound     = errors.New("match not found")
	ErrInvalidLimit = errors.New("invalid page limit")
)
