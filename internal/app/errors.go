package service

import "errors"

// Sentinel kinds for service lifecycle errors.
var (
	ErrNotStarted = errors.New("service not started")
	ErrOpenStore  = errors.New("open event store")
)
