package domain

// RouteStep is one stop of a computed dispatch route. Steps are
// ephemeral: they exist only between a route-compute response and the
// next compute, and the response order IS the visiting order. The
// client never reorders them.
type RouteStep struct {
	// ID is the complaint identifier for this stop.
	ID string `json:"_id"`

	// Title is the complaint headline, shown in the step popup.
	Title string `json:"title"`

	// Priority is the complaint urgency, shown in the step popup.
	Priority Priority `json:"priority"`

	// Location is where the stop is.
	Location Location `json:"location"`
}
