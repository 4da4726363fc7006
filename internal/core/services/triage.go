package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/civita-labs/civita-cli/internal/core/domain"
	"github.com/civita-labs/civita-cli/internal/core/ports/driven"
	"github.com/civita-labs/civita-cli/internal/core/ports/driving"
	"github.com/civita-labs/civita-cli/internal/logger"
)

// Ensure TriageService implements the interface.
var _ driving.TriageService = (*TriageService)(nil)

// TriageService drives the manager's triage surface. It owns the
// marker index: the mapping from complaint ID to the marker ref this
// controller placed, used to remove exactly its own markers before
// every re-render so stale markers never accumulate across refreshes.
type TriageService struct {
	repo    driven.ComplaintRepository
	surface driven.MapSurface // optional, nil for list-only surfaces

	mu         sync.Mutex
	markers    map[string]driven.MarkerRef
	lastFilter domain.Priority
	sweep      func()
}

// NewTriageService creates the triage controller. surface may be nil
// when the caller has no map, in which case only ordering applies.
func NewTriageService(repo driven.ComplaintRepository, surface driven.MapSurface) *TriageService {
	return &TriageService{
		repo:    repo,
		surface: surface,
		markers: make(map[string]driven.MarkerRef),
	}
}

// SweepOnRefresh registers a hook run before each marker
// reconciliation. The route planner registers its marker sweep here so
// route overlays retire on the next refresh rather than lingering
// under fresh triage markers.
func (s *TriageService) SweepOnRefresh(hook func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep = hook
}

// Refresh fetches, orders and re-renders the complaint set. The view
// is always a fresh projection of backend truth: repeated calls with
// unchanged backend state produce an identical list and marker set.
func (s *TriageService) Refresh(ctx context.Context, priority domain.Priority) ([]domain.Complaint, error) {
	s.mu.Lock()
	s.lastFilter = priority
	s.mu.Unlock()

	logger.Section("Triage Refresh")
	cs, err := s.repo.List(ctx, priority)
	if err != nil {
		return nil, fmt.Errorf("fetch complaints: %w", err)
	}
	logger.Debug("triage: fetched %d complaints (filter %q)", len(cs), priority)

	domain.SortForTriage(cs)
	s.reconcileMarkers(cs)
	return cs, nil
}

// RefreshLast repeats Refresh with the most recent filter. Used by
// status actions and by the realtime reconciler.
func (s *TriageService) RefreshLast(ctx context.Context) ([]domain.Complaint, error) {
	s.mu.Lock()
	filter := s.lastFilter
	s.mu.Unlock()
	return s.Refresh(ctx, filter)
}

// Assign transitions a complaint to assigned with a worker label.
func (s *TriageService) Assign(ctx context.Context, id, worker string) ([]domain.Complaint, error) {
	return s.transition(ctx, id, domain.StatusAssigned, worker)
}

// Start transitions a complaint to in_progress.
func (s *TriageService) Start(ctx context.Context, id string) ([]domain.Complaint, error) {
	return s.transition(ctx, id, domain.StatusInProgress, "")
}

// Finish transitions a complaint to finished.
func (s *TriageService) Finish(ctx context.Context, id string) ([]domain.Complaint, error) {
	return s.transition(ctx, id, domain.StatusFinished, "")
}

// transition issues one status-update request, then refreshes
// unconditionally. There is no optimistic local state to roll back:
// whether or not the update landed, the refreshed projection is the
// truth, so a refresh follows even a failed update. The update error,
// if any, takes precedence in the return value.
func (s *TriageService) transition(
	ctx context.Context, id string, status domain.Status, assignedTo string,
) ([]domain.Complaint, error) {
	updateErr := s.repo.UpdateStatus(ctx, id, status, assignedTo)
	if updateErr != nil {
		logger.Warn("triage: status update %s -> %s failed: %v", id, status, updateErr)
	}

	cs, refreshErr := s.RefreshLast(ctx)
	if updateErr != nil {
		return cs, fmt.Errorf("update status: %w", updateErr)
	}
	return cs, refreshErr
}

// reconcileMarkers removes every marker this controller previously
// placed, then recreates markers for records with a real location.
// Records without a mappable location get a list entry but no marker.
func (s *TriageService) reconcileMarkers(cs []domain.Complaint) {
	if s.surface == nil {
		return
	}

	s.mu.Lock()
	sweep := s.sweep
	s.mu.Unlock()
	if sweep != nil {
		sweep()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, ref := range s.markers {
		s.surface.RemoveMarker(ref)
		delete(s.markers, id)
	}

	for _, c := range cs {
		if !c.Location.Mappable() {
			continue
		}
		popup := fmt.Sprintf("%s (%s, %s)", c.Title, c.Priority, c.Status)
		s.markers[c.ID] = s.surface.AddMarker(c.Location, popup)
	}
}
