package tui

import "errors"

// ErrMissingIntakeService is returned when the intake service is not provided.
var ErrMissingIntakeService = errors.New("tui: intake service is required")

// ErrMissingTriageService is returned when the triage service is not provided.
var ErrMissingTriageService = errors.New("tui: triage service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
