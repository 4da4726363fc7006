package driven

import (
	"context"

	"github.com/civita-labs/civita-cli/internal/core/domain"
)

// Geolocator resolves the device's current position.
//
// Lookups are best-effort and bounded by the caller's context. Any
// failure (no source configured, stale fix, timeout) is reported as an
// error wrapping domain.ErrPositionUnavailable; callers treat that as
// "no position", never as a reason to abort what they were doing.
type Geolocator interface {
	// CurrentPosition returns the last known position.
	CurrentPosition(ctx context.Context) (domain.Location, error)
}
