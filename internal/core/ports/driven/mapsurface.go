package driven

import "github.com/civita-labs/civita-cli/internal/core/domain"

// MarkerRef is an ownership handle for a rendered map marker. Holding a
// ref is what entitles a service to remove the marker later; services
// track only the refs they created and never touch anyone else's.
type MarkerRef int64

// PathRef is an ownership handle for a rendered path.
type PathRef int64

// MapSurface is the rendering collaborator for markers and paths. The
// actual tile/map drawing is external; this port only manages the
// overlay objects the core places on it.
type MapSurface interface {
	// AddMarker places a marker and returns its ownership handle.
	// popup is the text shown when the marker is inspected.
	AddMarker(loc domain.Location, popup string) MarkerRef

	// RemoveMarker removes a single marker. Removing a ref that no
	// longer exists (for example after ClearMarkers) is a no-op.
	RemoveMarker(ref MarkerRef)

	// ClearMarkers removes every marker on the surface regardless of
	// owner. Route drawing uses this to sweep triage leftovers away.
	ClearMarkers()

	// DrawPath draws a connecting path through points in order.
	DrawPath(points []domain.Location) PathRef

	// RemovePath removes a path. Unknown refs are a no-op.
	RemovePath(ref PathRef)

	// FitBounds adjusts the view so all points are visible, padded by
	// the given fraction of the bounding box on every side.
	FitBounds(points []domain.Location, padding float64)
}
