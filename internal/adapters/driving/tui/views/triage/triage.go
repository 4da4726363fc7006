// Package triage provides the worker dashboard view: the ordered
// complaint list, the map panel and the status transition actions.
package triage

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/components/list"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/components/mappanel"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/components/status"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/keymap"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/messages"
	"github.com/civita-labs/civita-cli/internal/adapters/driving/tui/styles"
	"github.com/civita-labs/civita-cli/internal/core/domain"
	"github.com/civita-labs/civita-cli/internal/core/ports/driving"
)

// promptKind identifies what the inline prompt is collecting.
type promptKind int

const (
	promptNone promptKind = iota
	// promptWorker collects the worker label for an assignment.
	promptWorker
	// promptStart collects the "lat,lng" route starting point.
	promptStart
)

// filterCycle is the order the priority filter steps through.
var filterCycle = []domain.Priority{"", domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow}

// View represents the triage dashboard.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.ComplaintList
	mapPanel  *mappanel.Panel
	statusbar *status.Bar

	triageService driving.TriageService
	routeService  driving.RoutePlanService
	ctx           context.Context

	filterIdx int
	prompt    textinput.Model
	prompting promptKind
	promptID  string

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new triage view. routeService and mapPanel may be
// nil; the corresponding features are then disabled.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	triageService driving.TriageService,
	routeService driving.RoutePlanService,
	mapPanel *mappanel.Panel,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	prompt := textinput.New()
	prompt.CharLimit = 128
	prompt.Width = 32

	bar := status.NewBar(s, km)
	bar.SetState(status.StateTriage)

	return &View{
		styles:        s,
		keymap:        km,
		list:          list.NewComplaintList(s),
		mapPanel:      mapPanel,
		statusbar:     bar,
		triageService: triageService,
		routeService:  routeService,
		ctx:           context.Background(),
		prompt:        prompt,
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

// Init initialises the view and triggers the first refresh.
func (v *View) Init() tea.Cmd {
	return v.doRefresh()
}

// Update handles messages for the triage view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ComplaintsLoaded:
		v.handleComplaintsLoaded(msg.Complaints, msg.Err)
		return v, nil

	case messages.StatusChanged:
		// The refreshed list rides along even when the transition failed.
		v.handleComplaintsLoaded(msg.Complaints, nil)
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
		}
		return v, nil

	case messages.RoutePlanned:
		v.handleRoutePlanned(msg)
		return v, nil

	case messages.NoticeReceived:
		v.statusbar.SetMessage(msg.Text)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.prompting != promptNone {
		return v.handlePromptKey(msg)
	}

	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Refresh):
		v.statusbar.SetState(status.StateLoading)
		return v, v.doRefresh()

	case keymap.Matches(keyStr, v.keymap.Filter):
		v.filterIdx = (v.filterIdx + 1) % len(filterCycle)
		v.statusbar.SetState(status.StateLoading)
		return v, v.doRefresh()

	case keymap.Matches(keyStr, v.keymap.Assign):
		selected := v.list.SelectedComplaint()
		if selected == nil {
			return v, nil
		}
		v.prompting = promptWorker
		v.promptID = selected.ID
		v.prompt.Placeholder = "worker or vehicle label"
		v.prompt.Reset()
		return v, v.prompt.Focus()

	case keymap.Matches(keyStr, v.keymap.Start):
		selected := v.list.SelectedComplaint()
		if selected == nil {
			return v, nil
		}
		v.statusbar.SetState(status.StateLoading)
		return v, v.doStart(selected.ID)

	case keymap.Matches(keyStr, v.keymap.Finish):
		selected := v.list.SelectedComplaint()
		if selected == nil {
			return v, nil
		}
		v.statusbar.SetState(status.StateLoading)
		return v, v.doFinish(selected.ID)

	case keymap.Matches(keyStr, v.keymap.Route):
		v.prompting = promptStart
		v.prompt.Placeholder = "start lat,lng (blank for none)"
		v.prompt.Reset()
		return v, v.prompt.Focus()
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		return v, nil
	default:
		// Handle other keys
	}

	switch keyStr {
	case "k":
		v.list.MoveUp()
	case "j":
		v.list.MoveDown()
	}

	return v, nil
}

// handlePromptKey processes keyboard input while the inline prompt is open.
func (v *View) handlePromptKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		v.closePrompt()
		return v, nil

	case tea.KeyEnter:
		value := v.prompt.Value()
		kind := v.prompting
		id := v.promptID
		v.closePrompt()

		switch kind {
		case promptWorker:
			if strings.TrimSpace(value) == "" {
				return v, nil
			}
			v.statusbar.SetState(status.StateLoading)
			return v, v.doAssign(id, strings.TrimSpace(value))
		case promptStart:
			v.statusbar.SetState(status.StateLoading)
			return v, v.doPlanRoute(parseStart(value))
		default:
			return v, nil
		}

	default:
		// Handle other keys
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

// closePrompt dismisses the inline prompt.
func (v *View) closePrompt() {
	v.prompting = promptNone
	v.promptID = ""
	v.prompt.Blur()
	v.prompt.Reset()
}

// parseStart reads a "lat,lng" pair. Anything that does not parse as
// two coordinates counts as no position, which the planner treats as a
// {0,0} start.
func parseStart(s string) domain.Location {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return domain.Location{}
	}
	lat, okLat := domain.ParseCoordinate(parts[0])
	lng, okLng := domain.ParseCoordinate(parts[1])
	if !okLat || !okLng {
		return domain.Location{}
	}
	return domain.Location{Lat: lat, Lng: lng}
}

// Filter returns the active priority filter, empty meaning all.
func (v *View) Filter() domain.Priority {
	return filterCycle[v.filterIdx]
}

// doRefresh fetches and reorders the complaint list.
func (v *View) doRefresh() tea.Cmd {
	filter := v.Filter()
	return func() tea.Msg {
		if v.triageService == nil {
			return messages.ErrorOccurred{Err: ErrNoTriageService}
		}
		cs, err := v.triageService.Refresh(v.ctx, filter)
		return messages.ComplaintsLoaded{Complaints: cs, Err: err}
	}
}

// doAssign runs the assign transition.
func (v *View) doAssign(id, worker string) tea.Cmd {
	return func() tea.Msg {
		if v.triageService == nil {
			return messages.ErrorOccurred{Err: ErrNoTriageService}
		}
		cs, err := v.triageService.Assign(v.ctx, id, worker)
		return messages.StatusChanged{ID: id, Status: domain.StatusAssigned, Complaints: cs, Err: err}
	}
}

// doStart runs the start transition.
func (v *View) doStart(id string) tea.Cmd {
	return func() tea.Msg {
		if v.triageService == nil {
			return messages.ErrorOccurred{Err: ErrNoTriageService}
		}
		cs, err := v.triageService.Start(v.ctx, id)
		return messages.StatusChanged{ID: id, Status: domain.StatusInProgress, Complaints: cs, Err: err}
	}
}

// doFinish runs the finish transition.
func (v *View) doFinish(id string) tea.Cmd {
	return func() tea.Msg {
		if v.triageService == nil {
			return messages.ErrorOccurred{Err: ErrNoTriageService}
		}
		cs, err := v.triageService.Finish(v.ctx, id)
		return messages.StatusChanged{ID: id, Status: domain.StatusFinished, Complaints: cs, Err: err}
	}
}

// doPlanRoute asks the planner for a visiting order over the current
// filter and renders it.
func (v *View) doPlanRoute(start domain.Location) tea.Cmd {
	filter := v.Filter()
	return func() tea.Msg {
		if v.routeService == nil {
			return messages.ErrorOccurred{Err: ErrNoRouteService}
		}
		steps, err := v.routeService.PlanRoute(v.ctx, start, filter)
		return messages.RoutePlanned{Steps: steps, Err: err}
	}
}

// handleComplaintsLoaded applies a refreshed list.
func (v *View) handleComplaintsLoaded(cs []domain.Complaint, err error) {
	if err != nil {
		v.err = err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(err.Error())
		return
	}

	v.err = nil
	v.list.SetComplaints(cs)
	v.statusbar.SetState(status.StateTriage)
	v.statusbar.SetComplaintCount(len(cs))
	if f := v.Filter(); f != "" {
		v.statusbar.SetMessage(fmt.Sprintf("%d complaints · filter: %s", len(cs), f))
	} else {
		v.statusbar.SetMessage("")
	}
}

// handleRoutePlanned reports the outcome of a route computation.
func (v *View) handleRoutePlanned(msg messages.RoutePlanned) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.statusbar.SetState(status.StateTriage)
	v.statusbar.SetMessage(fmt.Sprintf("Route planned: %d stops", len(msg.Steps)))
}

// View renders the triage view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("Civita Triage")
	sections = append(sections, header, "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	body := v.list.View()
	if v.mapPanel != nil {
		body = lipgloss.JoinHorizontal(lipgloss.Top, v.list.View(), "  ", v.mapPanel.View())
	}
	sections = append(sections, body)

	if v.prompting != promptNone {
		label := "Assign to: "
		if v.prompting == promptStart {
			label = "Route start: "
		}
		promptView := v.styles.Border.Padding(0, 1).Render(
			v.styles.Subtitle.Render(label) + v.prompt.View())
		sections = append(sections, "", promptView)
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	listWidth := width
	if v.mapPanel != nil {
		mapWidth := width / 2
		if mapWidth > 60 {
			mapWidth = 60
		}
		listWidth = width - mapWidth - 2
		v.mapPanel.SetDimensions(mapWidth, height-8)
	}
	v.list.SetDimensions(listWidth, height-8)
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

// Complaints returns the currently listed complaints.
func (v *View) Complaints() []domain.Complaint {
	return v.list.Complaints()
}

// SelectedComplaint returns the currently selected complaint.
func (v *View) SelectedComplaint() *domain.Complaint {
	return v.list.SelectedComplaint()
}

// Prompting reports whether the inline prompt is open.
func (v *View) Prompting() bool {
	return v.prompting != promptNone
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
