package memory

import (
	"maps"
	"sync"

	"github.com/custodia-labs/sercha-tmx/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a map. The CLI falls back to it when no
// config directory can be created, so every setting keeps its default.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore copies values, keyed like the TOML store
// ("search.page_size").
func NewConfigStore(values map[string]any) *ConfigStore {
	copied := maps.Clone(values)
	if copied == nil {
		copied = make(map[string]any)
	}
	return &ConfigStore{values: copied}
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *ConfigStore) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

// GetInt accepts the integer shapes produced by TOML (int64) and JSON
// (float64) decoding as well as plain ints.
func (s *ConfigStore) GetInt(key string) int {
	v, _ := s.Get(key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

// Load is a no-op; there is nothing behind the map.
func (s *ConfigStore) Load() error { return nil }

func (s *ConfigStore) Path() string { return ":memory:" }
