// Package transcript provides the chat transcript component for the
// intake view.
package transcript

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/styles"
)

// Role identifies who produced a transcript line.
type Role int

const (
	// RoleCitizen is a line typed by the citizen.
	RoleCitizen Role = iota
	// RoleAssistant is a reply from the intake assistant.
	RoleAssistant
	// RoleNotice is a realtime notification line.
	RoleNotice
)

// Line is one entry of the transcript.
type Line struct {
	Role Role
	Text string
}

// Log displays the running chat transcript, newest lines at the
// bottom.
type Log struct {
	lines  []Line
	styles *styles.Styles
	width  int
	height int
}

// NewLog creates a new transcript log component.
func NewLog(s *styles.Styles) *Log {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Log{
		styles: s,
		width:  80,
		height: 16,
	}
}

// Init initialises the transcript log.
func (l *Log) Init() tea.Cmd {
	return nil
}

// Update handles transcript messages. The log is passive and is fed
// through Append.
func (l *Log) Update(msg tea.Msg) (*Log, tea.Cmd) {
	return l, nil
}

// Append adds one line to the transcript.
func (l *Log) Append(role Role, text string) {
	if text == "" {
		return
	}
	l.lines = append(l.lines, Line{Role: role, Text: text})
}

// View renders the most recent lines that fit the height.
func (l *Log) View() string {
	if len(l.lines) == 0 {
		return l.styles.Muted.Render("Type 'report' to file a complaint.")
	}

	visible := l.height
	if visible < 1 {
		visible = 1
	}
	start := 0
	if len(l.lines) > visible {
		start = len(l.lines) - visible
	}

	rendered := make([]string, 0, len(l.lines)-start)
	for _, line := range l.lines[start:] {
		rendered = append(rendered, l.renderLine(line))
	}
	return strings.Join(rendered, "\n")
}

// renderLine formats a single transcript line.
func (l *Log) renderLine(line Line) string {
	text := line.Text
	maxLen := l.width - 6
	if maxLen < 20 {
		maxLen = 20
	}
	if len(text) > maxLen {
		text = text[:maxLen-3] + "..."
	}

	switch line.Role {
	case RoleCitizen:
		return l.styles.CitizenMsg.Render("You: " + text)
	case RoleAssistant:
		return l.styles.BotMsg.Render("Civita: " + text)
	case RoleNotice:
		return l.styles.NoticeMsg.Render("* " + text)
	}
	return l.styles.Normal.Render(text)
}

// Lines returns the full transcript.
func (l *Log) Lines() []Line {
	return l.lines
}

// Count returns the number of transcript lines.
func (l *Log) Count() int {
	return len(l.lines)
}

// SetDimensions sets the component dimensions.
func (l *Log) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Clear discards the transcript.
func (l *Log) Clear() {
	l.lines = nil
}
