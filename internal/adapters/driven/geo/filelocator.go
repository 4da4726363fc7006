// Package geo implements the geolocator port from a position file.
//
// Field devices run a positioning daemon (GPS puck, phone bridge) that
// writes the current fix to a small TOML file. This adapter watches
// that file and serves the last known fix. There is deliberately no
// network lookup here: position is best-effort, and an absent or
// broken file simply means "no position", which intake treats as the
// {0,0} placeholder.
package geo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/civita-labs/civita-cli/internal/core/domain"
	"github.com/civita-labs/civita-cli/internal/core/ports/driven"
	"github.com/civita-labs/civita-cli/internal/logger"
)

// Ensure FileLocator implements the port.
var _ driven.Geolocator = (*FileLocator)(nil)

// positionFile is the on-disk fix format.
type positionFile struct {
	Lat float64 `toml:"lat"`
	Lng float64 `toml:"lng"`
}

// FileLocator serves the last known position from a watched file.
type FileLocator struct {
	path    string
	watcher *fsnotify.Watcher

	mu    sync.RWMutex
	fix   domain.Location
	valid bool
}

// NewFileLocator creates a locator for the given position file. The
// file may not exist yet; the locator reports no position until a
// valid fix appears. The watch covers the parent directory so that
// atomic rename-into-place updates are seen too.
func NewFileLocator(path string) (*FileLocator, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	l := &FileLocator{path: path, watcher: watcher}
	l.reload()
	go l.watch()
	return l, nil
}

// CurrentPosition returns the last known fix. The read is from memory
// and effectively instant; the context only matters for the error
// contract. No fix wraps domain.ErrPositionUnavailable.
func (l *FileLocator) CurrentPosition(ctx context.Context) (domain.Location, error) {
	if err := ctx.Err(); err != nil {
		return domain.Location{}, fmt.Errorf("%w: %w", domain.ErrPositionUnavailable, err)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.valid {
		return domain.Location{}, fmt.Errorf("%w: no fix in %s", domain.ErrPositionUnavailable, l.path)
	}
	return l.fix, nil
}

// Close stops watching the position file.
func (l *FileLocator) Close() error {
	return l.watcher.Close()
}

// watch keeps the fix fresh as the daemon rewrites the file.
func (l *FileLocator) watch() {
	for {
		select {
		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if event.Name != l.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				l.reload()
			}
			if event.Op&fsnotify.Remove != 0 {
				l.invalidate()
			}
		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("geo: watcher error: %v", err)
		}
	}
}

// reload parses the position file and updates the fix. A missing or
// malformed file invalidates the fix rather than erroring.
func (l *FileLocator) reload() {
	data, err := os.ReadFile(l.path)
	if err != nil {
		l.invalidate()
		return
	}

	var pf positionFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		logger.Warn("geo: malformed position file %s: %v", l.path, err)
		l.invalidate()
		return
	}

	l.mu.Lock()
	l.fix = domain.Location{Lat: pf.Lat, Lng: pf.Lng}
	l.valid = true
	l.mu.Unlock()
	logger.Debug("geo: fix updated to %.6f,%.6f", pf.Lat, pf.Lng)
}

func (l *FileLocator) invalidate() {
	l.mu.Lock()
	l.valid = false
	l.mu.Unlock()
}
