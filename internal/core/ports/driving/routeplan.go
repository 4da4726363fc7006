package driving

import (
	"context"

	"github.com/civita-labs/civita-cli/internal/core/domain"
)

// RoutePlanService turns the currently visible complaint set into an
// ordered visit sequence and renders it on the map surface.
type RoutePlanService interface {
	// PlanRoute fetches the complaint set for the given filter (empty
	// means all), asks the backend for a visiting order starting at
	// start, and renders one numbered marker per step plus a
	// connecting path. The path is a temporary artifact and retires
	// itself after a fixed duration; the markers persist until the
	// next plan or triage refresh.
	PlanRoute(ctx context.Context, start domain.Location, priority domain.Priority) ([]domain.RouteStep, error)
}
