package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested complaint does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBackendRejected indicates the backend answered but reported
	// failure (success=false or a missing expected field). Surfaced
	// distinctly from transport errors so the operator can tell
	// "failed to submit" from "network error".
	ErrBackendRejected = errors.New("backend rejected request")

	// ErrPositionUnavailable indicates the current position could not
	// be determined (no source, denial, or timeout). Never fatal to
	// submission: intake falls back to the {0,0} placeholder.
	ErrPositionUnavailable = errors.New("position unavailable")

	// ErrEmptyRoute indicates a route was requested with no candidate
	// complaints to visit.
	ErrEmptyRoute = errors.New("no complaints to route")
)
