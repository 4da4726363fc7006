// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Cancel cancels the current operation.
	Cancel key.Binding

	// Send submits the current chat utterance.
	Send key.Binding

	// Refresh reloads the complaint list from the backend.
	Refresh key.Binding

	// Filter cycles the priority filter.
	Filter key.Binding

	// Assign assigns the selected complaint to a worker.
	Assign key.Binding

	// Start marks the selected complaint in progress.
	Start key.Binding

	// Finish marks the selected complaint resolved.
	Finish key.Binding

	// Route plans a collection route over the listed complaints.
	Route key.Binding

	// Location toggles focus onto the location pin fields.
	Location key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		Assign: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "assign"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		Finish: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "done"),
		),
		Route: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "route"),
		),
		Location: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "location"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// TriageHelp returns keybindings for the triage dashboard.
func (k *KeyMap) TriageHelp() []key.Binding {
	return []key.Binding{k.Up, k.Refresh, k.Filter, k.Assign, k.Start, k.Finish, k.Route}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Refresh, k.Filter, k.Route},
		{k.Assign, k.Start, k.Finish},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
