package driving

import (
	"context"

	"github.com/civita-labs/civita-cli/internal/core/domain"
)

// TriageService drives the manager's triage surface: deterministic
// ordering of the complaint set, marker reconciliation on the map
// surface, and the status-transition actions.
type TriageService interface {
	// Refresh fetches the current complaint set (empty priority means
	// all), orders it for triage, rebuilds the map markers, and
	// returns the ordered list. The filter is remembered so that
	// action- and event-triggered refreshes reuse it.
	Refresh(ctx context.Context, priority domain.Priority) ([]domain.Complaint, error)

	// RefreshLast repeats Refresh with the most recent filter.
	RefreshLast(ctx context.Context) ([]domain.Complaint, error)

	// Assign transitions a complaint to assigned with a worker label,
	// then refreshes. The rendered view is always a fresh projection
	// of backend truth, never an optimistic local edit.
	Assign(ctx context.Context, id, worker string) ([]domain.Complaint, error)

	// Start transitions a complaint to in_progress, then refreshes.
	Start(ctx context.Context, id string) ([]domain.Complaint, error)

	// Finish transitions a complaint to finished, then refreshes.
	Finish(ctx context.Context, id string) ([]domain.Complaint, error)
}
