package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/civita-labs/civita-cli/internal/core/domain"
	"github.com/civita-labs/civita-cli/internal/core/ports/driven"
	"github.com/civita-labs/civita-cli/internal/core/ports/driving"
	"github.com/civita-labs/civita-cli/internal/logger"
)

// Ensure RoutePlanService implements the interface.
var _ driving.RoutePlanService = (*RoutePlanService)(nil)

const (
	// DefaultPathTTL is how long a drawn route path stays on the map
	// before it retires itself. Conditions change; a route older than
	// this would mislead more than it helps.
	DefaultPathTTL = 60 * time.Second

	// fitPadding is the bounding-box padding fraction used when
	// fitting the view to a route, generous so all stops stay visible.
	fitPadding = 0.8
)

// RoutePlanService turns the currently visible complaint set into a
// rendered visit sequence. Route markers live in their own lifecycle,
// deliberately outside the triage marker index: they are replaced by
// the next plan and retired by the next refresh (RetireMarkers).
type RoutePlanService struct {
	repo    driven.ComplaintRepository
	planner driven.RoutePlanner
	surface driven.MapSurface // optional, nil for text-only output

	pathTTL time.Duration

	mu       sync.Mutex
	rendered []driven.MarkerRef
}

// NewRoutePlanService creates the route planning client.
func NewRoutePlanService(
	repo driven.ComplaintRepository,
	planner driven.RoutePlanner,
	surface driven.MapSurface,
) *RoutePlanService {
	return &RoutePlanService{
		repo:    repo,
		planner: planner,
		surface: surface,
		pathTTL: DefaultPathTTL,
	}
}

// SetPathTTL overrides the path retirement delay. Used in tests.
func (s *RoutePlanService) SetPathTTL(d time.Duration) {
	s.pathTTL = d
}

// PlanRoute computes and renders a route over the full currently
// fetched (possibly filtered) complaint set. The candidate set is not
// a curated subset: whatever the active filter shows is what gets
// routed. The response order is the visiting order.
func (s *RoutePlanService) PlanRoute(
	ctx context.Context, start domain.Location, priority domain.Priority,
) ([]domain.RouteStep, error) {
	logger.Section("Route Planning")

	cs, err := s.repo.List(ctx, priority)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}
	if len(cs) == 0 {
		return nil, domain.ErrEmptyRoute
	}

	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}

	steps, err := s.planner.ComputeRoute(ctx, start, ids)
	if err != nil {
		return nil, fmt.Errorf("compute route: %w", err)
	}
	logger.Debug("route: %d steps for %d candidates", len(steps), len(ids))

	s.render(steps)
	return steps, nil
}

// render draws the route: all markers are swept first, including any
// left over from the triage view, then one numbered marker per step
// and a connecting path through all stops. The path retires itself
// after pathTTL; the markers persist until the next plan or refresh.
func (s *RoutePlanService) render(steps []domain.RouteStep) {
	if s.surface == nil {
		return
	}

	s.surface.ClearMarkers()

	refs := make([]driven.MarkerRef, 0, len(steps))
	points := make([]domain.Location, 0, len(steps))
	for i, step := range steps {
		popup := fmt.Sprintf("Step %d: %s (%s)", i+1, step.Title, step.Priority)
		refs = append(refs, s.surface.AddMarker(step.Location, popup))
		points = append(points, step.Location)
	}

	s.mu.Lock()
	s.rendered = refs
	s.mu.Unlock()

	if len(points) == 0 {
		return
	}

	path := s.surface.DrawPath(points)
	s.surface.FitBounds(points, fitPadding)

	time.AfterFunc(s.pathTTL, func() {
		s.surface.RemovePath(path)
	})
}

// RetireMarkers removes the markers left by the last plan. The triage
// controller invokes this at the start of every refresh so routed stops
// never stack under fresh triage markers on the shared surface. The
// path is untouched; it lives on its own timer.
func (s *RoutePlanService) RetireMarkers() {
	s.mu.Lock()
	refs := s.rendered
	s.rendered = nil
	s.mu.Unlock()

	if s.surface == nil {
		return
	}
	for _, ref := range refs {
		s.surface.RemoveMarker(ref)
	}
}
