package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civita-labs/civita-cli/internal/core/domain"
)

// --- Mock implementations ---

type mockIntakeService struct{}

func (m *mockIntakeService) Converse(_ context.Context, _, _ string) string { return "ok" }
func (m *mockIntakeService) EndSession(string)                              {}

type mockTriageService struct {
	complaints []domain.Complaint
}

func (m *mockTriageService) Refresh(_ context.Context, _ domain.Priority) ([]domain.Complaint, error) {
	return m.complaints, nil
}

func (m *mockTriageService) RefreshLast(context.Context) ([]domain.Complaint, error) {
	return m.complaints, nil
}

func (m *mockTriageService) Assign(_ context.Context, _, _ string) ([]domain.Complaint, error) {
	return m.complaints, nil
}

func (m *mockTriageService) Start(context.Context, string) ([]domain.Complaint, error) {
	return m.complaints, nil
}

func (m *mockTriageService) Finish(context.Context, string) ([]domain.Complaint, error) {
	return m.complaints, nil
}

// --- Tests ---

func TestNewApp_IntakeMode(t *testing.T) {
	ports := NewPorts(&mockIntakeService{}, nil, nil)

	app, err := NewApp(ports, ModeIntake, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, ModeIntake, app.Mode())
	assert.NotNil(t, app.IntakeView())
	assert.Nil(t, app.TriageView())
}

func TestNewApp_TriageMode(t *testing.T) {
	ports := NewPorts(nil, &mockTriageService{}, nil)

	app, err := NewApp(ports, ModeTriage, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, ModeTriage, app.Mode())
	assert.NotNil(t, app.TriageView())
}

func TestNewApp_MissingIntakeService(t *testing.T) {
	ports := NewPorts(nil, nil, nil)

	_, err := NewApp(ports, ModeIntake, nil, nil)

	assert.ErrorIs(t, err, ErrMissingIntakeService)
}

func TestNewApp_MissingTriageService(t *testing.T) {
	ports := NewPorts(&mockIntakeService{}, nil, nil)

	_, err := NewApp(ports, ModeTriage, nil, nil)

	assert.ErrorIs(t, err, ErrMissingTriageService)
}

func TestApp_Update_WindowSize(t *testing.T) {
	ports := NewPorts(&mockIntakeService{}, nil, nil)
	app, err := NewApp(ports, ModeIntake, nil, nil)
	require.NoError(t, err)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	updated, ok := model.(*App)
	require.True(t, ok)
	assert.True(t, updated.Ready())
}

func TestApp_CtrlCQuits(t *testing.T) {
	ports := NewPorts(&mockIntakeService{}, nil, nil)
	app, err := NewApp(ports, ModeIntake, nil, nil)
	require.NoError(t, err)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_QQuitsTriage(t *testing.T) {
	ports := NewPorts(nil, &mockTriageService{}, nil)
	app, err := NewApp(ports, ModeTriage, nil, nil)
	require.NoError(t, err)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_ViewBeforeReady(t *testing.T) {
	ports := NewPorts(&mockIntakeService{}, nil, nil)
	app, err := NewApp(ports, ModeIntake, nil, nil)
	require.NoError(t, err)

	assert.Contains(t, app.View(), "Initialising")
}

func TestApp_SetDimensions(t *testing.T) {
	ports := NewPorts(nil, &mockTriageService{}, nil)
	app, err := NewApp(ports, ModeTriage, nil, nil)
	require.NoError(t, err)

	app.SetDimensions(90, 28)

	assert.True(t, app.Ready())
	assert.NotContains(t, app.View(), "Initialising")
}
