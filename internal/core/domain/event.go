package domain

// EventKind identifies a realtime push event.
type EventKind string

const (
	// EventConnected is the hello emitted when the channel opens.
	EventConnected EventKind = "connected"

	// EventNewComplaint signals a complaint was created somewhere.
	EventNewComplaint EventKind = "new_complaint"

	// EventStatusUpdate signals a complaint changed status somewhere.
	EventStatusUpdate EventKind = "status_update"
)

// Event is a mutation notice delivered over the push channel. Delivery
// is at-least-once and unordered relative to REST responses, so
// consumers must treat events as refresh hints, never as state.
type Event struct {
	// Kind identifies what happened.
	Kind EventKind

	// Complaint is the record the event concerns. May be nil for
	// kinds that carry no record, such as the connection hello.
	Complaint *Complaint
}
