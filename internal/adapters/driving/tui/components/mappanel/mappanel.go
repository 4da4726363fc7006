// Package mappanel renders the shared map surface as a TUI panel.
package mappanel

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/civita-labs/civita-cli/internal/adapters/driven/mapgrid"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/styles"
)

// Panel displays the map grid plus its marker legend. The panel does
// not own the overlay objects; it only prints whatever the surface
// currently holds, so service-side reconciliation shows up on the next
// redraw without any panel-side bookkeeping.
type Panel struct {
	surface *mapgrid.Surface
	styles  *styles.Styles
	width   int
	height  int
}

// NewPanel creates a map panel over the given surface.
func NewPanel(surface *mapgrid.Surface, s *styles.Styles) *Panel {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Panel{
		surface: surface,
		styles:  s,
		width:   40,
		height:  16,
	}
}

// Init initialises the map panel.
func (p *Panel) Init() tea.Cmd {
	return nil
}

// Update handles panel messages. The panel is passive.
func (p *Panel) Update(msg tea.Msg) (*Panel, tea.Cmd) {
	return p, nil
}

// View renders the grid with the legend underneath.
func (p *Panel) View() string {
	if p.surface == nil {
		return p.styles.Muted.Render("No map")
	}

	legend := p.surface.Legend()

	gridHeight := p.height - len(legend) - 1
	if gridHeight < 4 {
		gridHeight = 4
	}

	grid := p.surface.Render(p.width, gridHeight)
	if grid == "" {
		return p.styles.Muted.Render("No map")
	}

	lines := []string{p.styles.Border.Render(grid)}
	if p.surface.HasPath() {
		lines = append(lines, p.styles.Subtitle.Render("route drawn"))
	}
	for _, entry := range legend {
		if len(entry) > p.width {
			entry = entry[:p.width-3] + "..."
		}
		lines = append(lines, p.styles.Muted.Render(entry))
	}
	return strings.Join(lines, "\n")
}

// Surface returns the underlying map surface.
func (p *Panel) Surface() *mapgrid.Surface {
	return p.surface
}

// SetDimensions sets the panel dimensions.
func (p *Panel) SetDimensions(width, height int) {
	p.width = width
	p.height = height
}

// Width returns the current width.
func (p *Panel) Width() int {
	return p.width
}

// Height returns the current height.
func (p *Panel) Height() int {
	return p.height
}
