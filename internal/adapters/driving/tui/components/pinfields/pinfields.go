// Package pinfields provides the coordinate entry component that binds
// a pair of lat/lng fields to a map pin.
package pinfields

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/styles"
	"github.com/civita-labs/civita-cli/internal/core/domain"
	"github.com/civita-labs/civita-cli/internal/core/ports/driven"
)

// Ensure Fields can stand in as a position source.
var _ driven.Geolocator = (*Fields)(nil)

const pinPopup = "Pinned location"

// Fields is a two-field coordinate editor bound to a single map pin.
//
// The binding is one-way and idempotent: every edit re-parses both
// fields, and when both parse the pin is moved (remove then add, the
// component owns exactly one marker ref). When either field is blank or
// malformed the pin is withdrawn and the component reports no position.
// It implements the position source interface so a placed pin can take
// precedence over the automatic locator during intake.
type Fields struct {
	lat textinput.Model
	lng textinput.Model

	styles  *styles.Styles
	surface driven.MapSurface

	mu     sync.Mutex
	pinRef driven.MarkerRef
	pinned bool
	pin    domain.Location

	focusIdx int
	focused  bool
}

// NewFields creates the coordinate editor. surface may be nil, in which
// case the component tracks the pin without rendering it.
func NewFields(surface driven.MapSurface, s *styles.Styles) *Fields {
	if s == nil {
		s = styles.DefaultStyles()
	}

	lat := textinput.New()
	lat.Placeholder = "latitude"
	lat.CharLimit = 24
	lat.Width = 14

	lng := textinput.New()
	lng.Placeholder = "longitude"
	lng.CharLimit = 24
	lng.Width = 14

	return &Fields{
		lat:     lat,
		lng:     lng,
		styles:  s,
		surface: surface,
	}
}

// Init initialises the pin fields.
func (f *Fields) Init() tea.Cmd {
	return nil
}

// Update handles field editing. Tab switches between the two fields;
// any edit re-evaluates the binding.
func (f *Fields) Update(msg tea.Msg) (*Fields, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "tab" {
		f.cycleFocus()
		return f, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	f.lat, cmd = f.lat.Update(msg)
	cmds = append(cmds, cmd)
	f.lng, cmd = f.lng.Update(msg)
	cmds = append(cmds, cmd)

	f.rebind()
	return f, tea.Batch(cmds...)
}

// rebind re-parses both fields and reconciles the pin with the result.
func (f *Fields) rebind() {
	lat, okLat := domain.ParseCoordinate(f.lat.Value())
	lng, okLng := domain.ParseCoordinate(f.lng.Value())

	f.mu.Lock()
	defer f.mu.Unlock()

	if !okLat || !okLng {
		if f.pinned && f.surface != nil {
			f.surface.RemoveMarker(f.pinRef)
		}
		f.pinned = false
		return
	}

	loc := domain.Location{Lat: lat, Lng: lng}
	if f.pinned && loc == f.pin {
		return
	}

	if f.surface != nil {
		if f.pinned {
			f.surface.RemoveMarker(f.pinRef)
		}
		f.pinRef = f.surface.AddMarker(loc, pinPopup)
	}
	f.pin = loc
	f.pinned = true
}

// View renders the two fields side by side with the pin state.
func (f *Fields) View() string {
	label := f.styles.Subtitle.Render("Location: ")

	state := f.styles.Muted.Render("no pin")
	if loc, ok := f.Pin(); ok {
		state = f.styles.Success.Render(fmt.Sprintf("pin %.4f, %.4f", loc.Lat, loc.Lng))
	}

	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center,
		label, f.lat.View(), " ", f.lng.View(), "  ", state)
}

// Pin returns the bound location, if both fields currently parse.
func (f *Fields) Pin() (domain.Location, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pin, f.pinned
}

// CurrentPosition returns the pinned location, or reports that no
// position is available when the fields are blank or malformed.
func (f *Fields) CurrentPosition(ctx context.Context) (domain.Location, error) {
	if err := ctx.Err(); err != nil {
		return domain.Location{}, fmt.Errorf("%w: %w", domain.ErrPositionUnavailable, err)
	}

	loc, ok := f.Pin()
	if !ok {
		return domain.Location{}, fmt.Errorf("%w: no pin placed", domain.ErrPositionUnavailable)
	}
	return loc, nil
}

// SetValues fills both fields programmatically and rebinds.
func (f *Fields) SetValues(lat, lng string) {
	f.lat.SetValue(lat)
	f.lng.SetValue(lng)
	f.rebind()
}

// Focus gives keyboard focus to the latitude field.
func (f *Fields) Focus() tea.Cmd {
	f.focused = true
	f.focusIdx = 0
	f.lng.Blur()
	return f.lat.Focus()
}

// Blur removes focus from both fields.
func (f *Fields) Blur() {
	f.focused = false
	f.lat.Blur()
	f.lng.Blur()
}

// Focused returns whether the component has keyboard focus.
func (f *Fields) Focused() bool {
	return f.focused
}

// cycleFocus moves focus between the two fields.
func (f *Fields) cycleFocus() {
	f.focusIdx = (f.focusIdx + 1) % 2
	if f.focusIdx == 0 {
		f.lng.Blur()
		f.lat.Focus()
	} else {
		f.lat.Blur()
		f.lng.Focus()
	}
}

// Reset clears both fields and withdraws the pin.
func (f *Fields) Reset() {
	f.lat.Reset()
	f.lng.Reset()
	f.rebind()
}
