package compare

import "errors"

// Sentinel kinds for comparison failures.
var (
	ErrMissingID = errors.New("match id is required")
	ErrHalfStats = errors.New("per-half stats lookup failed")
)
