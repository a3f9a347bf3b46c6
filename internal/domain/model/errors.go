package model

import "errors"

// Sentinel kinds for malformed events.
var (
	ErrMissingIdentifier  = errors.New("missing identifier")
	ErrUnknownEventType   = errors.New("unknown event type")
	ErrInvalidCoordinates = errors.New("coordinates outside [0,100]")
	ErrInvalidHalf        = errors.New("invalid half")
)

// ErrUnknownScope is returned by ParseScope.
var ErrUnknownScope = errors.New("unknown scope")
