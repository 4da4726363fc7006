package services

import (
	"context"
	"sync"

	"github.com/civita-labs/civita-cli/internal/core/domain"
	"github.com/civita-labs/civita-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockRepository implements driven.ComplaintRepository for testing.
type mockRepository struct {
	mu sync.Mutex

	complaints []domain.Complaint
	created    *domain.Complaint
	listErr    error
	createErr  error
	updateErr  error

	createCalls []domain.ComplaintDraft
	listFilters []domain.Priority
	updates     []statusUpdate
}

type statusUpdate struct {
	id         string
	status     domain.Status
	assignedTo string
}

func (m *mockRepository) Create(_ context.Context, draft domain.ComplaintDraft) (*domain.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls = append(m.createCalls, draft)
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.created != nil {
		return m.created, nil
	}
	return &domain.Complaint{ID: "created-1", Title: draft.Title}, nil
}

func (m *mockRepository) List(_ context.Context, priority domain.Priority) ([]domain.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listFilters = append(m.listFilters, priority)
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domain.Complaint, len(m.complaints))
	copy(out, m.complaints)
	return out, nil
}

func (m *mockRepository) Get(_ context.Context, id string) (*domain.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.complaints {
		if m.complaints[i].ID == id {
			return &m.complaints[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRepository) UpdateStatus(_ context.Context, id string, status domain.Status, assignedTo string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, statusUpdate{id: id, status: status, assignedTo: assignedTo})
	return m.updateErr
}

func (m *mockRepository) Health(_ context.Context) error {
	return nil
}

// mockGeolocator implements driven.Geolocator for testing.
type mockGeolocator struct {
	loc   domain.Location
	err   error
	calls int
}

func (m *mockGeolocator) CurrentPosition(_ context.Context) (domain.Location, error) {
	m.calls++
	if m.err != nil {
		return domain.Location{}, m.err
	}
	return m.loc, nil
}

// mockPlanner implements driven.RoutePlanner for testing.
type mockPlanner struct {
	steps []domain.RouteStep
	err   error

	starts []domain.Location
	ids    [][]string
}

func (m *mockPlanner) ComputeRoute(_ context.Context, start domain.Location, ids []string) ([]domain.RouteStep, error) {
	m.starts = append(m.starts, start)
	m.ids = append(m.ids, ids)
	if m.err != nil {
		return nil, m.err
	}
	return m.steps, nil
}

// mockSurface implements driven.MapSurface for testing. It keeps the
// live marker and path sets so tests can assert on what is actually
// visible, not just on call counts.
type mockSurface struct {
	mu sync.Mutex

	nextRef int64
	markers map[driven.MarkerRef]string // ref -> popup
	paths   map[driven.PathRef][]domain.Location

	clearCalls int
	fitCalls   []fitCall
	addOrder   []string
}

type fitCall struct {
	points  []domain.Location
	padding float64
}

func newMockSurface() *mockSurface {
	return &mockSurface{
		markers: make(map[driven.MarkerRef]string),
		paths:   make(map[driven.PathRef][]domain.Location),
	}
}

func (m *mockSurface) AddMarker(_ domain.Location, popup string) driven.MarkerRef {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextRef++
	ref := driven.MarkerRef(m.nextRef)
	m.markers[ref] = popup
	m.addOrder = append(m.addOrder, popup)
	return ref
}

func (m *mockSurface) RemoveMarker(ref driven.MarkerRef) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.markers, ref)
}

func (m *mockSurface) ClearMarkers() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearCalls++
	m.markers = make(map[driven.MarkerRef]string)
}

func (m *mockSurface) DrawPath(points []domain.Location) driven.PathRef {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextRef++
	ref := driven.PathRef(m.nextRef)
	m.paths[ref] = points
	return ref
}

func (m *mockSurface) RemovePath(ref driven.PathRef) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.paths, ref)
}

func (m *mockSurface) FitBounds(points []domain.Location, padding float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fitCalls = append(m.fitCalls, fitCall{points: points, padding: padding})
}

func (m *mockSurface) markerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.markers)
}

func (m *mockSurface) pathCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.paths)
}

func (m *mockSurface) popups() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.markers))
	for _, p := range m.markers {
		out = append(out, p)
	}
	return out
}

// mockChannel implements driven.PushChannel for testing.
type mockChannel struct {
	events chan domain.Event
}

func newMockChannel() *mockChannel {
	return &mockChannel{events: make(chan domain.Event, 16)}
}

func (m *mockChannel) Events() <-chan domain.Event {
	return m.events
}

func (m *mockChannel) Close() error {
	close(m.events)
	return nil
}
