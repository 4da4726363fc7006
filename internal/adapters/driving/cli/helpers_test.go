package cli

import (
	"context"
	"fmt"

	"github.com/civita-labs/civita-cli/internal/core/domain"
	"github.com/civita-labs/civita-cli/internal/core/ports/driven"
	"github.com/civita-labs/civita-cli/internal/core/services"
)

// --- Mock implementations ---

type mockRepository struct {
	complaints []domain.Complaint
	created    []domain.ComplaintDraft
	updates    [][3]string
	err        error
}

func (m *mockRepository) Create(_ context.Context, draft domain.ComplaintDraft) (*domain.Complaint, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = append(m.created, draft)
	c := domain.Complaint{
		ID:          "cmp-1",
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
		Reporter:    draft.Reporter,
		Location:    draft.Location,
		Status:      domain.StatusNew,
	}
	return &c, nil
}

func (m *mockRepository) List(_ context.Context, _ domain.Priority) ([]domain.Complaint, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.complaints, nil
}

func (m *mockRepository) Get(_ context.Context, id string) (*domain.Complaint, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.complaints {
		if m.complaints[i].ID == id {
			return &m.complaints[i], nil
		}
	}
	return nil, fmt.Errorf("complaint %s: %w", id, domain.ErrNotFound)
}

func (m *mockRepository) UpdateStatus(_ context.Context, id string, status domain.Status, assignedTo string) error {
	if m.err != nil {
		return m.err
	}
	m.updates = append(m.updates, [3]string{id, string(status), assignedTo})
	return nil
}

func (m *mockRepository) Health(context.Context) error {
	return m.err
}

type mockPlanner struct {
	steps []domain.RouteStep
	err   error
}

func (m *mockPlanner) ComputeRoute(_ context.Context, _ domain.Location, _ []string) ([]domain.RouteStep, error) {
	return m.steps, m.err
}

type mockConfigStore struct {
	data map[string]any
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if v, ok := m.data[key].(string); ok {
		return v
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	if v, ok := m.data[key].(int); ok {
		return v
	}
	return 0
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	if v, ok := m.data[key].(float64); ok {
		return v
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	if v, ok := m.data[key].(bool); ok {
		return v
	}
	return false
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.data[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }
func (m *mockConfigStore) Path() string {
	return "/tmp/civita-test/config.toml"
}

// setupTestServices swaps the wired services for mocks and returns a
// cleanup that restores the previous wiring.
func setupTestServices() func() {
	return setupTestServicesWith(&mockRepository{complaints: testComplaints()}, &mockPlanner{steps: testSteps()})
}

func setupTestServicesWith(mockRepo driven.ComplaintRepository, mockPlan driven.RoutePlanner) func() {
	oldConfig := configStore
	oldRepo := repo
	oldPlanner := planner
	oldIntake := intakeService
	oldTriage := triageService
	oldRoute := routeService
	oldPush := pushURL

	configStore = &mockConfigStore{data: map[string]any{}}
	repo = mockRepo
	planner = mockPlan
	intakeService = services.NewIntakeService(mockRepo, nil)
	triageService = services.NewTriageService(mockRepo, nil)
	routeService = services.NewRoutePlanService(mockRepo, mockPlan, nil)
	pushURL = "ws://127.0.0.1:1/events"

	return func() {
		configStore = oldConfig
		repo = oldRepo
		planner = oldPlanner
		intakeService = oldIntake
		triageService = oldTriage
		routeService = oldRoute
		pushURL = oldPush
	}
}

func testComplaints() []domain.Complaint {
	worker := "truck-7"
	return []domain.Complaint{
		{ID: "cmp-1", Title: "Overflowing bin", Priority: domain.PriorityHigh,
			Status: domain.StatusNew, Reporter: "anonymous",
			Location: domain.Location{Lat: 12.97, Lng: 77.59}},
		{ID: "cmp-2", Title: "Pothole", Priority: domain.PriorityLow,
			Status: domain.StatusAssigned, AssignedTo: &worker, Reporter: "asha"},
	}
}

func testSteps() []domain.RouteStep {
	return []domain.RouteStep{
		{ID: "cmp-1", Title: "Overflowing bin", Priority: domain.PriorityHigh,
			Location: domain.Location{Lat: 12.97, Lng: 77.59}},
		{ID: "cmp-2", Title: "Pothole", Priority: domain.PriorityLow},
	}
}
