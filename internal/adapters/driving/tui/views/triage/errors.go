package triage

import "errors"

// ErrNoTriageService is returned when the view has no triage service wired.
var ErrNoTriageService = errors.New("no triage service configured")

// ErrNoRouteService is returned when route planning is requested without
// a route plan service.
var ErrNoRouteService = errors.New("no route plan service configured")
