package domain

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Priority is the urgency level of a complaint.
type Priority string

const (
	// PriorityLow is for complaints that can wait.
	PriorityLow Priority = "low"

	// PriorityMedium is the default urgency.
	PriorityMedium Priority = "medium"

	// PriorityHigh is for complaints needing immediate attention.
	PriorityHigh Priority = "high"
)

// Rank returns the numeric triage rank of the priority.
// Higher ranks sort first. Unknown values rank as medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Status is the lifecycle state of a complaint, owned by the backend.
type Status string

const (
	// StatusNew is the initial state of a freshly filed complaint.
	StatusNew Status = "new"

	// StatusAssigned means a worker or vehicle has been assigned.
	StatusAssigned Status = "assigned"

	// StatusInProgress means work on the complaint has started.
	StatusInProgress Status = "in_progress"

	// StatusFinished means the complaint has been resolved.
	StatusFinished Status = "finished"
)

// Location is a geographic coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Mappable reports whether the location qualifies for a map marker.
// The backend stores {0,0} for complaints filed without a position, and
// a zero on either axis marks the pair as a placeholder, not a real fix.
func (l Location) Mappable() bool {
	return l.Lat != 0 && l.Lng != 0
}

// ParseCoordinate parses a single coordinate field as entered by an
// operator. Malformed or empty input is treated as absent, never as an
// error: the second return value is false and the coordinate is zero.
func ParseCoordinate(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Complaint is the durable record owned by the backend. The client only
// ever holds read-only projections of it, fetched per refresh.
type Complaint struct {
	// ID is the opaque stable identifier assigned by the backend.
	// It is the sole join key between a record, its list entry and
	// its map marker.
	ID string `json:"_id"`

	// Title is the short headline of the complaint.
	Title string `json:"title"`

	// Description is the free-text body. May be empty.
	Description string `json:"description"`

	// Priority is the urgency level.
	Priority Priority `json:"priority"`

	// Reporter is who filed the complaint. Defaults to "anonymous".
	Reporter string `json:"reporter"`

	// Location is where the complaint was filed. {0,0} when unknown.
	Location Location `json:"location"`

	// Status is the current lifecycle state.
	Status Status `json:"status"`

	// AssignedTo is the worker or vehicle label, nil while unassigned.
	AssignedTo *string `json:"assigned_to"`

	// CreatedAt is when the backend persisted the record.
	CreatedAt Timestamp `json:"created_at"`
}

// ComplaintDraft is the transient record built up during intake.
// It is owned solely by the conversation engine and is never partially
// persisted: it is consumed whole on submit, or discarded on cancel.
type ComplaintDraft struct {
	// Title is required non-empty before submission.
	Title string `json:"title"`

	// Description is optional.
	Description string `json:"description"`

	// Priority defaults to medium when left empty.
	Priority Priority `json:"priority"`

	// Reporter defaults to "anonymous" when left empty.
	Reporter string `json:"reporter"`

	// Location defaults to {0,0} when no position is available.
	Location Location `json:"location"`
}

// DefaultReporter is used when the citizen declines to give a name.
const DefaultReporter = "anonymous"

// WithDefaults returns a copy of the draft with the documented defaults
// applied: medium priority and an anonymous reporter.
func (d ComplaintDraft) WithDefaults() ComplaintDraft {
	if !d.Priority.Valid() {
		d.Priority = PriorityMedium
	}
	if d.Reporter == "" {
		d.Reporter = DefaultReporter
	}
	return d
}

// SortForTriage orders complaints in place for the triage list: priority
// rank descending, then creation time ascending. The sort is stable so
// repeated refreshes over the same set render identically regardless of
// the order the backend returned them in.
func SortForTriage(cs []Complaint) {
	sort.SliceStable(cs, func(i, j int) bool {
		ri, rj := cs[i].Priority.Rank(), cs[j].Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		return cs[i].CreatedAt.Before(cs[j].CreatedAt.Time)
	})
}

// Timestamp wraps time.Time to accept the backend's wire format.
// The backend serialises datetimes with isoformat(), which omits the
// timezone suffix, so plain RFC 3339 parsing is not enough.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// UnmarshalJSON parses a timestamp in any of the accepted layouts.
// Unparseable values decode as the zero time rather than failing the
// whole record: ordering treats them as oldest, which is harmless.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

// MarshalJSON renders the timestamp as RFC 3339 in UTC.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}
