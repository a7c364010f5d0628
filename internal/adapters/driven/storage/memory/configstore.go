package memory

import (
	"sync"

	"github.com/custodia-labs/medlens/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is an in-memory driven.ConfigStore. Settings written to it
// last for the life of the process; tests use it in place of config.toml.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates an empty in-memory config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// typed returns the value for key converted by conv, or the zero value.
func typed[T any](s *ConfigStore, key string, conv func(any) (T, bool)) T {
	var zero T
	val, ok := s.Get(key)
	if !ok {
		return zero
	}
	if v, ok := conv(val); ok {
		return v
	}
	return zero
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// GetString retrieves a string value, or "" when unset or not a string.
func (s *ConfigStore) GetString(key string) string { return typed(s, key, asString) }

// GetInt retrieves an integer value. Floats are truncated.
func (s *ConfigStore) GetInt(key string) int { return typed(s, key, asInt) }

// GetBool retrieves a boolean value, or false when unset.
func (s *ConfigStore) GetBool(key string) bool { return typed(s, key, asBool) }

// GetFloat retrieves a numeric value, widening integers.
func (s *ConfigStore) GetFloat(key string) float64 { return typed(s, key, asFloat) }

// Set stores a configuration value.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Save is a no-op; values are never written anywhere.
func (s *ConfigStore) Save() error {
	return nil
}

// Load is a no-op.
func (s *ConfigStore) Load() error {
	return nil
}

// Path returns a placeholder, since there is no backing file.
func (s *ConfigStore) Path() string {
	return ":memory:"
}
