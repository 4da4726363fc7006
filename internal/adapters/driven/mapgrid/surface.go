// Package mapgrid implements the map surface port as a character
// grid. Real tile rendering is an external concern; this surface owns
// the overlay objects (markers, paths, viewport) and projects them
// onto a text grid the TUI can print. Ownership semantics match the
// port contract exactly: refs are handles, stale refs are no-ops.
package mapgrid

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/civita-labs/civita-cli/internal/core/domain"
	"github.com/civita-labs/civita-cli/internal/core/ports/driven"
)

// Ensure Surface implements the port.
var _ driven.MapSurface = (*Surface)(nil)

// Marker glyphs by insertion order; later markers share the overflow
// glyph.
const markerGlyphs = "123456789abcdefghijklmnopqrstuvwxyz"
const overflowGlyph = '+'
const pathGlyph = '·'

// marker is one overlay marker.
type marker struct {
	loc   domain.Location
	popup string
	seq   int64
}

// bounds is a lat/lng axis-aligned box.
type bounds struct {
	minLat, maxLat float64
	minLng, maxLng float64
}

// Surface is a text-grid map surface. Safe for concurrent use: the
// route path retirement timer fires from its own goroutine.
type Surface struct {
	mu      sync.Mutex
	nextRef int64
	markers map[driven.MarkerRef]marker
	paths   map[driven.PathRef][]domain.Location

	view    bounds
	hasView bool

	defCenter domain.Location
	defSpan   float64
}

// NewSurface creates a surface with a default viewport centred on
// center, spanning span degrees, used until FitBounds is called.
func NewSurface(center domain.Location, span float64) *Surface {
	if span <= 0 {
		span = 0.1
	}
	return &Surface{
		markers:   make(map[driven.MarkerRef]marker),
		paths:     make(map[driven.PathRef][]domain.Location),
		defCenter: center,
		defSpan:   span,
	}
}

// AddMarker places a marker and returns its ownership handle.
func (s *Surface) AddMarker(loc domain.Location, popup string) driven.MarkerRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRef++
	ref := driven.MarkerRef(s.nextRef)
	s.markers[ref] = marker{loc: loc, popup: popup, seq: s.nextRef}
	return ref
}

// RemoveMarker removes a single marker. Stale refs are a no-op.
func (s *Surface) RemoveMarker(ref driven.MarkerRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.markers, ref)
}

// ClearMarkers removes every marker regardless of owner.
func (s *Surface) ClearMarkers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers = make(map[driven.MarkerRef]marker)
}

// DrawPath draws a connecting path through points in order.
func (s *Surface) DrawPath(points []domain.Location) driven.PathRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRef++
	ref := driven.PathRef(s.nextRef)
	s.paths[ref] = append([]domain.Location(nil), points...)
	return ref
}

// RemovePath removes a path. Stale refs are a no-op.
func (s *Surface) RemovePath(ref driven.PathRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.paths, ref)
}

// FitBounds pins the viewport to the bounding box of points, expanded
// by the padding fraction on every side.
func (s *Surface) FitBounds(points []domain.Location, padding float64) {
	if len(points) == 0 {
		return
	}

	b := boundsOf(points)
	latPad := (b.maxLat - b.minLat) * padding
	lngPad := (b.maxLng - b.minLng) * padding
	b.minLat -= latPad
	b.maxLat += latPad
	b.minLng -= lngPad
	b.maxLng += lngPad

	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = b
	s.hasView = true
}

// HasPath reports whether any path is currently drawn.
func (s *Surface) HasPath() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths) > 0
}

// Legend returns one line per marker, glyph first, in insertion order.
func (s *Surface) Legend() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ordered := s.orderedMarkers()
	lines := make([]string, len(ordered))
	for i, m := range ordered {
		lines[i] = fmt.Sprintf("%c %s", glyphFor(i), m.popup)
	}
	return lines
}

// Render projects the overlay onto a width x height character grid.
func (s *Surface) Render(width, height int) string {
	if width < 2 || height < 2 {
		return ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	b := s.activeBounds()

	// Paths under markers.
	for _, points := range s.paths {
		for i := 1; i < len(points); i++ {
			drawSegment(grid, b, points[i-1], points[i])
		}
	}

	for i, m := range s.orderedMarkers() {
		if row, col, ok := project(b, m.loc, width, height); ok {
			grid[row][col] = glyphFor(i)
		}
	}

	var sb strings.Builder
	for i, row := range grid {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}

// activeBounds picks the viewport: an explicit FitBounds wins, then
// the content's own bounding box, then the configured default.
func (s *Surface) activeBounds() bounds {
	if s.hasView {
		return normalise(s.view)
	}

	var points []domain.Location
	for _, m := range s.markers {
		points = append(points, m.loc)
	}
	for _, p := range s.paths {
		points = append(points, p...)
	}
	if len(points) > 0 {
		b := boundsOf(points)
		latPad := (b.maxLat - b.minLat) * 0.1
		lngPad := (b.maxLng - b.minLng) * 0.1
		b.minLat -= latPad
		b.maxLat += latPad
		b.minLng -= lngPad
		b.maxLng += lngPad
		return normalise(b)
	}

	half := s.defSpan / 2
	return bounds{
		minLat: s.defCenter.Lat - half, maxLat: s.defCenter.Lat + half,
		minLng: s.defCenter.Lng - half, maxLng: s.defCenter.Lng + half,
	}
}

// orderedMarkers returns markers sorted by insertion sequence.
func (s *Surface) orderedMarkers() []marker {
	out := make([]marker, 0, len(s.markers))
	for _, m := range s.markers {
		out = append(out, m)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].seq < out[j-1].seq; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func glyphFor(i int) rune {
	if i < len(markerGlyphs) {
		return rune(markerGlyphs[i])
	}
	return overflowGlyph
}

func boundsOf(points []domain.Location) bounds {
	b := bounds{
		minLat: points[0].Lat, maxLat: points[0].Lat,
		minLng: points[0].Lng, maxLng: points[0].Lng,
	}
	for _, p := range points[1:] {
		b.minLat = math.Min(b.minLat, p.Lat)
		b.maxLat = math.Max(b.maxLat, p.Lat)
		b.minLng = math.Min(b.minLng, p.Lng)
		b.maxLng = math.Max(b.maxLng, p.Lng)
	}
	return b
}

// normalise guarantees a non-degenerate box so projection never
// divides by zero.
func normalise(b bounds) bounds {
	const epsilon = 1e-6
	if b.maxLat-b.minLat < epsilon {
		b.minLat -= epsilon
		b.maxLat += epsilon
	}
	if b.maxLng-b.minLng < epsilon {
		b.minLng -= epsilon
		b.maxLng += epsilon
	}
	return b
}

// project maps a location to grid coordinates. Locations outside the
// viewport report ok=false. North is up: row 0 is maxLat.
func project(b bounds, loc domain.Location, width, height int) (row, col int, ok bool) {
	fy := (b.maxLat - loc.Lat) / (b.maxLat - b.minLat)
	fx := (loc.Lng - b.minLng) / (b.maxLng - b.minLng)
	if fy < 0 || fy > 1 || fx < 0 || fx > 1 {
		return 0, 0, false
	}
	row = int(fy * float64(height-1))
	col = int(fx * float64(width-1))
	return row, col, true
}

// drawSegment rasterises one path segment into the grid at a fixed
// internal resolution, skipping cells already holding a glyph.
func drawSegment(grid [][]rune, b bounds, from, to domain.Location) {
	height := len(grid)
	width := len(grid[0])

	steps := width + height
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		p := domain.Location{
			Lat: from.Lat + (to.Lat-from.Lat)*f,
			Lng: from.Lng + (to.Lng-from.Lng)*f,
		}
		if row, col, ok := project(b, p, width, height); ok && grid[row][col] == ' ' {
			grid[row][col] = pathGlyph
		}
	}
}
