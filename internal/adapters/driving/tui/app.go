package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/components/mappanel"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/components/pinfields"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/keymap"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/messages"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/styles"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/views/intake"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/views/triage"
)

// Mode selects which surface the app runs: the citizen chat or the
// worker dashboard. Each CLI entry command runs exactly one.
type Mode int

const (
	// ModeIntake runs the conversational intake chat.
	ModeIntake Mode = iota
	// ModeTriage runs the worker dashboard.
	ModeTriage
)

// redrawInterval drives periodic map panel redraws so service-side
// changes (marker reconciliation, path retirement) become visible
// without user input.
const redrawInterval = time.Second

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// mode selects the active surface.
	mode Mode

	// intakeView is the citizen chat view.
	intakeView *intake.View

	// triageView is the worker dashboard view.
	triageView *triage.View

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// pin and mapPanel are optional widgets wired by the CLI layer.
func NewApp(ports *Ports, mode Mode, pin *pinfields.Fields, mapPanel *mappanel.Panel) (*App, error) {
	if err := ports.Validate(mode); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	app := &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		mode:   mode,
	}

	switch mode {
	case ModeIntake:
		app.intakeView = intake.NewView(s, km, ports.Intake, pin)
	case ModeTriage:
		app.triageView = triage.NewView(s, km, ports.Triage, ports.RoutePlan, mapPanel)
	}

	return app, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	if a.intakeView != nil {
		a.intakeView.WithContext(ctx)
	}
	if a.triageView != nil {
		a.triageView.WithContext(ctx)
	}
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("civita - Municipal Complaints"),
	}
	switch a.mode {
	case ModeIntake:
		cmds = append(cmds, a.intakeView.Init())
	case ModeTriage:
		cmds = append(cmds, a.triageView.Init(), tick())
	}
	return tea.Batch(cmds...)
}

// tick schedules the next periodic redraw.
func tick() tea.Cmd {
	return tea.Tick(redrawInterval, func(time.Time) tea.Msg {
		return messages.Tick{}
	})
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		if a.intakeView != nil {
			a.intakeView.SetDimensions(msg.Width, msg.Height)
		}
		if a.triageView != nil {
			a.triageView.SetDimensions(msg.Width, msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			if a.intakeView != nil {
				a.intakeView.EndSession()
			}
			return a, tea.Quit
		}
		// q quits the dashboard outside of prompts; the chat needs the
		// letter for typing.
		if msg.String() == "q" && a.mode == ModeTriage && !a.triageView.Prompting() {
			return a, tea.Quit
		}
		return a.forward(msg)

	case messages.Tick:
		// Rendering alone picks up map surface changes.
		if a.mode == ModeTriage {
			return a, tick()
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a.forward(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	_, cmd = a.forward(msg)
	return a, cmd
}

// forward routes a message to the active view.
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.mode {
	case ModeIntake:
		a.intakeView, cmd = a.intakeView.Update(msg)
	case ModeTriage:
		a.triageView, cmd = a.triageView.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.mode {
	case ModeIntake:
		return a.intakeView.View()
	case ModeTriage:
		return a.triageView.View()
	default:
		return ""
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// NewProgram wraps the app in a bubbletea program without starting it,
// so callers can hand the program to the realtime reconciler for
// p.Send before running it.
func (a *App) NewProgram() *tea.Program {
	return tea.NewProgram(a, tea.WithAltScreen())
}

// Mode returns the active mode.
func (a *App) Mode() Mode {
	return a.mode
}

// IntakeView returns the intake view, nil outside intake mode.
func (a *App) IntakeView() *intake.View {
	return a.intakeView
}

// TriageView returns the triage view, nil outside triage mode.
func (a *App) TriageView() *triage.View {
	return a.triageView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	if a.intakeView != nil {
		a.intakeView.SetDimensions(width, height)
	}
	if a.triageView != nil {
		a.triageView.SetDimensions(width, height)
	}
}
