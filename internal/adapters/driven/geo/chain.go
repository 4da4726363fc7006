package geo

import (
	"context"
	"fmt"

	"github.com/civita-labs/civita-cli/internal/core/domain"
	"github.com/civita-labs/civita-cli/internal/core/ports/driven"
)

// Ensure ChainLocator implements the port.
var _ driven.Geolocator = (*ChainLocator)(nil)

// ChainLocator tries position sources in order and returns the first
// fix. A manually placed pin chained ahead of the file locator lets the
// operator override the automatic position without disabling it.
type ChainLocator struct {
	sources []driven.Geolocator
}

// Chain builds a locator over the given sources. Nil entries are
// skipped so optional sources can be passed unconditionally.
func Chain(sources ...driven.Geolocator) *ChainLocator {
	kept := make([]driven.Geolocator, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &ChainLocator{sources: kept}
}

// CurrentPosition returns the first available fix. When every source
// fails the last failure is reported; an empty chain reports no
// position outright.
func (c *ChainLocator) CurrentPosition(ctx context.Context) (domain.Location, error) {
	var lastErr error
	for _, s := range c.sources {
		loc, err := s.CurrentPosition(ctx)
		if err == nil {
			return loc, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("%w: no position sources", domain.ErrPositionUnavailable)
	}
	return domain.Location{}, lastErr
}
