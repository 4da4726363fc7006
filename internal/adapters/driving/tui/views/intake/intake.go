// Package intake provides the conversational complaint intake view.
package intake

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/components/input"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/components/pinfields"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/components/status"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/components/transcript"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/keymap"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/messages"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/styles"
	"github.com/civita-labs/civita-cli/internal/core/ports/driving"
)

// View represents the intake chat view with transcript, input,
// location pin fields and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	log       *transcript.Log
	input     *input.ChatInput
	pin       *pinfields.Fields
	statusbar *status.Bar

	intakeService driving.IntakeService
	sessionID     string
	ctx           context.Context

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new intake view. pin may be nil when the view runs
// without a location widget.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	intakeService driving.IntakeService,
	pin *pinfields.Fields,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		log:           transcript.NewLog(s),
		input:         input.NewChatInput(s),
		pin:           pin,
		statusbar:     status.NewBar(s, km),
		intakeService: intakeService,
		sessionID:     uuid.NewString(),
		ctx:           context.Background(),
		width:         80,
		height:        24,
		ready:         false,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the intake view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ReplyReceived:
		v.log.Append(transcript.RoleAssistant, msg.Reply)
		v.statusbar.SetState(status.StateReady)
		return v, nil

	case messages.NoticeReceived:
		v.log.Append(transcript.RoleNotice, msg.Text)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if keymap.Matches(msg.String(), v.keymap.Location) && v.pin != nil {
		if v.pin.Focused() {
			v.pin.Blur()
			return v, v.input.Focus()
		}
		v.input.Blur()
		return v, v.pin.Focus()
	}

	// Pin fields swallow keys while focused; esc hands focus back.
	if v.pin != nil && v.pin.Focused() {
		if msg.Type == tea.KeyEsc {
			v.pin.Blur()
			return v, v.input.Focus()
		}
		var cmd tea.Cmd
		v.pin, cmd = v.pin.Update(msg)
		return v, cmd
	}

	if msg.Type == tea.KeyEnter {
		text := v.input.Value()
		if text == "" {
			return v, nil
		}
		v.log.Append(transcript.RoleCitizen, text)
		v.input.Reset()
		v.statusbar.SetState(status.StateLoading)
		return v, v.sendUtterance(text)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// sendUtterance advances the conversation by one turn.
func (v *View) sendUtterance(text string) tea.Cmd {
	return func() tea.Msg {
		if v.intakeService == nil {
			return messages.ErrorOccurred{Err: ErrNoIntakeService}
		}
		reply := v.intakeService.Converse(v.ctx, v.sessionID, text)
		return messages.ReplyReceived{Reply: reply}
	}
}

// View renders the intake view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("Civita")
	sections = append(sections, header, "")

	sections = append(sections, v.log.View(), "")

	if v.pin != nil {
		sections = append(sections, v.pin.View(), "")
	}

	sections = append(sections, v.input.View())

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.log.SetDimensions(width, height-8)
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// SessionID returns the conversation session identifier.
func (v *View) SessionID() string {
	return v.sessionID
}

// Transcript returns the transcript log.
func (v *View) Transcript() *transcript.Log {
	return v.log
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// EndSession discards the session's draft in the intake service.
func (v *View) EndSession() {
	if v.intakeService != nil {
		v.intakeService.EndSession(v.sessionID)
	}
}
