// Package file provides the TOML-backed configuration store.
package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/civita-labs/civita-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Well-known configuration keys.
const (
	// KeyBackendURL is the base URL of the complaint backend.
	KeyBackendURL = "backend.url"

	// KeyPushURL is the WebSocket URL of the push channel.
	KeyPushURL = "push.url"

	// KeyPositionFile is the path of the watched position file.
	KeyPositionFile = "position.file"

	// KeyMapCenterLat and KeyMapCenterLng set the default map centre.
	KeyMapCenterLat = "map.center_lat"
	KeyMapCenterLng = "map.center_lng"

	// KeyMapSpan sets the default map span in degrees.
	KeyMapSpan = "map.span"
)

// Defaults returns the out-of-the-box configuration.
func Defaults() map[string]any {
	return map[string]any{
		KeyBackendURL:   "http://127.0.0.1:5000",
		KeyPushURL:      "ws://127.0.0.1:5000/events",
		KeyMapCenterLat: 12.97,
		KeyMapCenterLng: 77.59,
		KeyMapSpan:      0.1,
	}
}

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
// Configuration is stored in a TOML file within the civita config directory.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.civita/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".civita")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]any),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	// Fill in defaults for unset keys without persisting them; an
	// untouched config file stays minimal.
	for k, v := range Defaults() {
		if _, ok := s.data[k]; !ok {
			s.data[k] = v
		}
	}

	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}

	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}

	// TOML integers are parsed as int64
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// GetFloat retrieves a float configuration value.
func (s *ConfigStore) GetFloat(key string) float64 {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	val, ok := s.Get(key)
	if !ok {
		return false
	}

	b, ok := val.(bool)
	if !ok {
		return false
	}
	return b
}

// Set stores a configuration value and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
	return s.Save()
}

// Save persists the current configuration to storage.
func (s *ConfigStore) Save() error {
	s.mu.RLock()
	data, err := toml.Marshal(s.data)
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from storage.
func (s *ConfigStore) Load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return toml.Unmarshal(data, &s.data)
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
