package geo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civita-labs/civita-cli/internal/core/domain"
)

func writePosition(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestCurrentPositionFromExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "position.toml")
	writePosition(t, path, "lat = 12.97\nlng = 77.59\n")

	l, err := NewFileLocator(path)
	require.NoError(t, err)
	defer l.Close()

	loc, err := l.CurrentPosition(context.Background())

	require.NoError(t, err)
	assert.InDelta(t, 12.97, loc.Lat, 1e-9)
	assert.InDelta(t, 77.59, loc.Lng, 1e-9)
}

func TestCurrentPositionWithoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "position.toml")

	l, err := NewFileLocator(path)
	require.NoError(t, err)
	defer l.Close()

	_, err = l.CurrentPosition(context.Background())

	assert.ErrorIs(t, err, domain.ErrPositionUnavailable)
}

func TestFixUpdatesWhenFileChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "position.toml")
	writePosition(t, path, "lat = 1.0\nlng = 2.0\n")

	l, err := NewFileLocator(path)
	require.NoError(t, err)
	defer l.Close()

	writePosition(t, path, "lat = 3.0\nlng = 4.0\n")

	assert.Eventually(t, func() bool {
		loc, err := l.CurrentPosition(context.Background())
		return err == nil && loc.Lat == 3.0 && loc.Lng == 4.0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFixAppearsWhenFileIsCreatedLater(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "position.toml")

	l, err := NewFileLocator(path)
	require.NoError(t, err)
	defer l.Close()

	_, err = l.CurrentPosition(context.Background())
	require.ErrorIs(t, err, domain.ErrPositionUnavailable)

	writePosition(t, path, "lat = 12.0\nlng = 77.0\n")

	assert.Eventually(t, func() bool {
		_, err := l.CurrentPosition(context.Background())
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMalformedFileMeansNoPosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "position.toml")
	writePosition(t, path, "lat = \"north\"\n")

	l, err := NewFileLocator(path)
	require.NoError(t, err)
	defer l.Close()

	_, err = l.CurrentPosition(context.Background())

	assert.ErrorIs(t, err, domain.ErrPositionUnavailable)
}

func TestCancelledContextReportsUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "position.toml")
	writePosition(t, path, "lat = 1.0\nlng = 2.0\n")

	l, err := NewFileLocator(path)
	require.NoError(t, err)
	defer l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = l.CurrentPosition(ctx)

	assert.ErrorIs(t, err, domain.ErrPositionUnavailable)
}
