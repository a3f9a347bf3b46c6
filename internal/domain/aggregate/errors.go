package aggregate

import (
	"errors"
	"fmt"
)

// Sentinel kinds for aggregation failures.
var (
	ErrFetchFailed = errors.New("event store fetch failed")
	ErrCanceled    = errors.New("aggregation canceled")
)

// Error is the single typed failure returned by the engine. Err wraps one of
// the sentinels above together with the underlying cause.
type Error struct {
	Op      string
	MatchID string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("aggregate %s match %s: %v", e.Op, e.MatchID, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// FetchError reports a failed collaborator call for matchID.
func FetchError(op, matchID string, cause error) *Error {
	return &Error{Op: op, MatchID: matchID, Err: fmt.Errorf("%w: %w", ErrFetchFailed, cause)}
}

// CanceledError reports an aggregation abandoned because ctx ended.
func CanceledError(op, matchID string, cause error) *Error {
	return &Error{Op: op, MatchID: matchID, Err: fmt.Errorf("%w: %w", ErrCanceled, cause)}
}
