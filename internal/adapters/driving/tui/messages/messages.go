// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/civita-labs/civita-cli/internal/core/domain"
)

// ReplyReceived carries the assistant's reply to an utterance.
type ReplyReceived struct {
	Reply string
}

// NoticeReceived carries a realtime notification line for the
// transcript or dashboard.
type NoticeReceived struct {
	Text string
}

// ComplaintsLoaded carries a freshly ordered complaint list.
type ComplaintsLoaded struct {
	Complaints []domain.Complaint
	Err        error
}

// StatusChanged signals that a status transition completed. Complaints
// holds the refreshed list that came back with it.
type StatusChanged struct {
	ID         string
	Status     domain.Status
	Complaints []domain.Complaint
	Err        error
}

// RoutePlanned carries the visiting order of a planned route.
type RoutePlanned struct {
	Steps []domain.RouteStep
	Err   error
}

// Tick drives periodic redraws of the map panel.
type Tick struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
