// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/styles"
	"github.com/civita-labs/civita-cli/internal/core/domain"
)

// ComplaintList displays triage-ordered complaints in a navigable list.
// It never reorders what it is given: ordering is the service's job.
type ComplaintList struct {
	complaints []domain.Complaint
	selected   int
	styles     *styles.Styles
	width      int
	height     int
}

// NewComplaintList creates a new complaint list component.
func NewComplaintList(s *styles.Styles) *ComplaintList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ComplaintList{
		complaints: nil,
		selected:   0,
		styles:     s,
		width:      80,
		height:     10,
	}
}

// Init initialises the complaint list.
func (c *ComplaintList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (c *ComplaintList) Update(msg tea.Msg) (*ComplaintList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			c.MoveUp()
		case tea.KeyDown:
			c.MoveDown()
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			c.MoveUp()
		case "j":
			c.MoveDown()
		}
	}
	return c, nil
}

// View renders the complaint list.
func (c *ComplaintList) View() string {
	if len(c.complaints) == 0 {
		return c.styles.Muted.Render("No complaints")
	}

	lines := make([]string, 0, len(c.complaints)+2)

	header := c.styles.Subtitle.Render(fmt.Sprintf("Complaints (%d)", len(c.complaints)))
	lines = append(lines, header, "")

	// Each entry takes two lines (headline + detail).
	visibleCount := (c.height - 2) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if c.selected >= visibleCount {
		start = c.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(c.complaints) {
		end = len(c.complaints)
	}

	for i := start; i < end; i++ {
		lines = append(lines, c.renderComplaint(i, &c.complaints[i]))
	}

	return strings.Join(lines, "\n")
}

// renderComplaint formats a single complaint entry.
func (c *ComplaintList) renderComplaint(index int, cm *domain.Complaint) string {
	indicator := "  "
	if index == c.selected {
		indicator = "> "
	}

	title := cm.Title
	if title == "" {
		title = "(Untitled)"
	}
	maxTitleLen := c.width - 14
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	var titleLine string
	if index == c.selected {
		titleLine = c.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitleLen, title, cm.Priority))
	} else {
		titleLine = c.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitleLen, title)) +
			c.priorityStyle(cm.Priority).Render(string(cm.Priority))
	}

	detail := string(cm.Status)
	if cm.AssignedTo != nil && *cm.AssignedTo != "" {
		detail += " · " + *cm.AssignedTo
	}
	if !cm.Location.Mappable() {
		detail += " · no location"
	}
	detailLine := c.styles.Muted.Render("    " + detail)

	return titleLine + "\n" + detailLine
}

// priorityStyle picks the style for a priority label.
func (c *ComplaintList) priorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return c.styles.PriorityHigh
	case domain.PriorityLow:
		return c.styles.PriorityLow
	default:
		return c.styles.PriorityMedium
	}
}

// SetComplaints replaces the list contents, preserving the selection by
// ID where possible so a refresh does not yank the cursor around.
func (c *ComplaintList) SetComplaints(complaints []domain.Complaint) {
	var selectedID string
	if cur := c.SelectedComplaint(); cur != nil {
		selectedID = cur.ID
	}

	c.complaints = complaints
	c.selected = 0
	for i := range complaints {
		if complaints[i].ID == selectedID {
			c.selected = i
			break
		}
	}
}

// Complaints returns the current list.
func (c *ComplaintList) Complaints() []domain.Complaint {
	return c.complaints
}

// Selected returns the index of the selected complaint.
func (c *ComplaintList) Selected() int {
	return c.selected
}

// SetSelected sets the selected index.
func (c *ComplaintList) SetSelected(index int) {
	if index >= 0 && index < len(c.complaints) {
		c.selected = index
	}
}

// SelectedComplaint returns the currently selected complaint, or nil if none.
func (c *ComplaintList) SelectedComplaint() *domain.Complaint {
	if len(c.complaints) == 0 || c.selected < 0 || c.selected >= len(c.complaints) {
		return nil
	}
	return &c.complaints[c.selected]
}

// MoveUp moves selection up.
func (c *ComplaintList) MoveUp() {
	if c.selected > 0 {
		c.selected--
	}
}

// MoveDown moves selection down.
func (c *ComplaintList) MoveDown() {
	if c.selected < len(c.complaints)-1 {
		c.selected++
	}
}

// SetDimensions sets the component dimensions.
func (c *ComplaintList) SetDimensions(width, height int) {
	c.width = width
	c.height = height
}

// Count returns the number of complaints.
func (c *ComplaintList) Count() int {
	return len(c.complaints)
}

// IsEmpty returns whether the list is empty.
func (c *ComplaintList) IsEmpty() bool {
	return len(c.complaints) == 0
}
