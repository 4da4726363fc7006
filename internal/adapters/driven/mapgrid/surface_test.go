package mapgrid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civita-labs/civita-cli/internal/core/domain"
	"github.com/civita-labs/civita-cli/internal/core/ports/driven"
)

func center() domain.Location {
	return domain.Location{Lat: 12.97, Lng: 77.59}
}

func TestAddAndRemoveMarker(t *testing.T) {
	s := NewSurface(center(), 0.1)

	ref := s.AddMarker(center(), "Dump site (high, new)")
	out := s.Render(40, 20)
	assert.Contains(t, out, "1")

	s.RemoveMarker(ref)
	out = s.Render(40, 20)
	assert.NotContains(t, out, "1")
}

func TestRemoveMarkerStaleRefIsNoop(t *testing.T) {
	s := NewSurface(center(), 0.1)
	ref := s.AddMarker(center(), "a")
	s.ClearMarkers()

	// Refs invalidated by ClearMarkers must not panic or remove
	// anything new.
	s.RemoveMarker(ref)
	s.RemovePath(driven.PathRef(99))

	assert.Empty(t, s.Legend())
}

func TestClearMarkersRemovesAll(t *testing.T) {
	s := NewSurface(center(), 0.1)
	s.AddMarker(center(), "a")
	s.AddMarker(domain.Location{Lat: 12.98, Lng: 77.60}, "b")

	s.ClearMarkers()

	assert.Empty(t, s.Legend())
	assert.Equal(t, strings.TrimRight(s.Render(10, 4), " \n"), strings.TrimRight(NewSurface(center(), 0.1).Render(10, 4), " \n"))
}

func TestLegendInInsertionOrder(t *testing.T) {
	s := NewSurface(center(), 0.1)
	s.AddMarker(center(), "first")
	s.AddMarker(domain.Location{Lat: 12.98, Lng: 77.60}, "second")

	legend := s.Legend()

	require.Len(t, legend, 2)
	assert.Equal(t, "1 first", legend[0])
	assert.Equal(t, "2 second", legend[1])
}

func TestDrawAndRemovePath(t *testing.T) {
	s := NewSurface(center(), 0.1)
	points := []domain.Location{
		{Lat: 12.95, Lng: 77.57},
		{Lat: 12.99, Lng: 77.61},
	}

	ref := s.DrawPath(points)
	assert.True(t, s.HasPath())
	assert.Contains(t, s.Render(40, 20), string(pathGlyph))

	s.RemovePath(ref)
	assert.False(t, s.HasPath())
	assert.NotContains(t, s.Render(40, 20), string(pathGlyph))
}

func TestFitBoundsBringsOutlierIntoView(t *testing.T) {
	s := NewSurface(center(), 0.01)
	far := domain.Location{Lat: 13.5, Lng: 78.2}
	s.AddMarker(center(), "near")
	s.AddMarker(far, "far")

	// Force the default tiny viewport: without a fit, content bounds
	// would be used, so pin the view to just the centre first.
	s.FitBounds([]domain.Location{center()}, 0.8)
	out := s.Render(40, 20)
	assert.NotContains(t, out, "2")

	s.FitBounds([]domain.Location{center(), far}, 0.8)
	out = s.Render(40, 20)
	assert.Contains(t, out, "1")
	assert.Contains(t, out, "2")
}

func TestRenderEmptySurface(t *testing.T) {
	s := NewSurface(center(), 0.1)

	out := s.Render(20, 5)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	for _, line := range lines {
		assert.Len(t, line, 20)
		assert.Equal(t, "", strings.TrimSpace(line))
	}
}

func TestRenderTinyGrid(t *testing.T) {
	s := NewSurface(center(), 0.1)
	assert.Equal(t, "", s.Render(1, 1))
	assert.Equal(t, "", s.Render(0, 10))
}

func TestSinglePointFitDoesNotDivideByZero(t *testing.T) {
	s := NewSurface(center(), 0.1)
	s.FitBounds([]domain.Location{center()}, 0.8)
	s.AddMarker(center(), "only")

	out := s.Render(40, 20)

	assert.Contains(t, out, "1")
}
