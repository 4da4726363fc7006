package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStoreAppliesDefaults(t *testing.T) {
	s, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:5000", s.GetString(KeyBackendURL))
	assert.Equal(t, "ws://127.0.0.1:5000/events", s.GetString(KeyPushURL))
	assert.InDelta(t, 12.97, s.GetFloat(KeyMapCenterLat), 1e-9)
	assert.InDelta(t, 0.1, s.GetFloat(KeyMapSpan), 1e-9)
}

func TestSetPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	s, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyBackendURL, "http://city.example:8080"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://city.example:8080", reloaded.GetString(KeyBackendURL))
}

func TestFileValuesOverrideDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "\"backend.url\" = \"http://other:9000\"\n\"map.span\" = 0.5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	s, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://other:9000", s.GetString(KeyBackendURL))
	assert.InDelta(t, 0.5, s.GetFloat(KeyMapSpan), 1e-9)
	// Untouched keys keep their defaults.
	assert.Equal(t, "ws://127.0.0.1:5000/events", s.GetString(KeyPushURL))
}

func TestTypedGettersOnMissingAndMistypedKeys(t *testing.T) {
	s, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", s.GetString("nope"))
	assert.Equal(t, 0, s.GetInt("nope"))
	assert.Equal(t, 0.0, s.GetFloat("nope"))
	assert.False(t, s.GetBool("nope"))

	require.NoError(t, s.Set("some.string", "hello"))
	assert.Equal(t, 0, s.GetInt("some.string"))
	assert.Equal(t, 0.0, s.GetFloat("some.string"))
}

func TestGetFloatAcceptsIntegers(t *testing.T) {
	s, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set(KeyMapSpan, int64(2)))

	assert.Equal(t, 2.0, s.GetFloat(KeyMapSpan))
}

func TestPath(t *testing.T) {
	dir := t.TempDir()
	s, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.toml"), s.Path())
}
