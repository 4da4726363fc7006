// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#16A34A"), // Civic green
		Secondary:  lipgloss.Color("#0EA5E9"), // Sky blue
		Foreground: lipgloss.Color("#E5E7EB"), // Light gray
		Muted:      lipgloss.Color("#6B7280"), // Medium gray
		Success:    lipgloss.Color("#4ADE80"), // Green
		Warning:    lipgloss.Color("#FACC15"), // Yellow
		Error:      lipgloss.Color("#F87171"), // Red
		Border:     lipgloss.Color("#374151"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Subtitle style for secondary headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// InputField style for input areas.
	InputField lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style

	// CitizenMsg styles the citizen's lines in the chat transcript.
	CitizenMsg lipgloss.Style

	// BotMsg styles the assistant's lines in the chat transcript.
	BotMsg lipgloss.Style

	// NoticeMsg styles realtime notification lines in the transcript.
	NoticeMsg lipgloss.Style

	// PriorityHigh styles high-priority labels.
	PriorityHigh lipgloss.Style

	// PriorityMedium styles medium-priority labels.
	PriorityMedium lipgloss.Style

	// PriorityLow styles low-priority labels.
	PriorityLow lipgloss.Style
}

// DefaultStyles returns styles using the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// NewStyles creates styles from a theme.
func NewStyles(t *Theme) *Styles {
	if t == nil {
		t = DefaultTheme()
	}

	return &Styles{
		theme:          t,
		Title:          lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Subtitle:       lipgloss.NewStyle().Foreground(t.Secondary),
		Normal:         lipgloss.NewStyle().Foreground(t.Foreground),
		Muted:          lipgloss.NewStyle().Foreground(t.Muted),
		Selected:       lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Reverse(true),
		Error:          lipgloss.NewStyle().Foreground(t.Error),
		Success:        lipgloss.NewStyle().Foreground(t.Success),
		Warning:        lipgloss.NewStyle().Foreground(t.Warning),
		InputField:     lipgloss.NewStyle().Foreground(t.Foreground),
		StatusBar:      lipgloss.NewStyle().Foreground(t.Muted),
		Help:           lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Border:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border),
		CitizenMsg:     lipgloss.NewStyle().Foreground(t.Secondary),
		BotMsg:         lipgloss.NewStyle().Foreground(t.Foreground),
		NoticeMsg:      lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		PriorityHigh:   lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		PriorityMedium: lipgloss.NewStyle().Foreground(t.Warning),
		PriorityLow:    lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// Theme returns the theme backing these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
