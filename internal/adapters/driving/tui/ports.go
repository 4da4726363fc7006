// Package tui provides the interactive terminal user interface for civita.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/civita-labs/civita-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Intake runs the conversational complaint flow.
	Intake driving.IntakeService

	// Triage drives the dashboard list, markers and transitions.
	Triage driving.TriageService

	// RoutePlan computes and renders dispatch routes. Optional; the
	// route key is disabled without it.
	RoutePlan driving.RoutePlanService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	intake driving.IntakeService,
	triage driving.TriageService,
	routePlan driving.RoutePlanService,
) *Ports {
	return &Ports{
		Intake:    intake,
		Triage:    triage,
		RoutePlan: routePlan,
	}
}

// Validate ensures all required ports are set for the given mode.
// Returns an error if a required port is nil.
func (p *Ports) Validate(mode Mode) error {
	switch mode {
	case ModeIntake:
		if p.Intake == nil {
			return ErrMissingIntakeService
		}
	case ModeTriage:
		if p.Triage == nil {
			return ErrMissingTriageService
		}
	default:
		return ErrInvalidPorts
	}
	return nil
}
