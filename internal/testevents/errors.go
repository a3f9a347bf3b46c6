package testevents

import "errors"

// Sentinel kinds for generation failures.
var (
	ErrInvalidConfig = errors.New("invalid generator config")
	ErrSeed          = errors.New("seed event store")
)
