package driven

import (
	"context"

	"github.com/civita-labs/civita-cli/internal/core/domain"
)

// ComplaintRepository is the stateless request/response wrapper around
// the backend complaint API. The backend owns all durable state and all
// business rules; implementations carry no cache and no local truth.
//
// Error contract: transport failures are returned as-is (wrapped), while
// an answer that arrives but reports failure is wrapped around
// domain.ErrBackendRejected so callers can surface the two distinctly.
type ComplaintRepository interface {
	// Create files a new complaint and returns the persisted record,
	// including the backend-assigned identifier.
	Create(ctx context.Context, draft domain.ComplaintDraft) (*domain.Complaint, error)

	// List fetches the current complaint set. A non-empty priority
	// filters server-side; empty fetches all.
	List(ctx context.Context, priority domain.Priority) ([]domain.Complaint, error)

	// Get fetches a single complaint by identifier.
	Get(ctx context.Context, id string) (*domain.Complaint, error)

	// UpdateStatus transitions a complaint to the given status.
	// assignedTo is only meaningful for the assigned status and is
	// omitted from the request when empty.
	UpdateStatus(ctx context.Context, id string, status domain.Status, assignedTo string) error

	// Health probes the backend liveness endpoint.
	Health(ctx context.Context) error
}

// RoutePlanner asks the backend to compute a visiting order over a
// candidate set of complaints. The returned order is the visiting
// order; callers must not reorder it.
type RoutePlanner interface {
	// ComputeRoute computes a route from start through the complaints
	// identified by ids.
	ComputeRoute(ctx context.Context, start domain.Location, ids []string) ([]domain.RouteStep, error)
}
