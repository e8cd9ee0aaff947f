package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

const configFileName = "config.toml"

// DefaultConfigDir returns the tuberag config directory. The
// TUBERAG_CONFIG_DIR environment variable overrides the default
// ~/.tuberag.
func DefaultConfigDir() (string, error) {
	if dir := os.Getenv("TUBERAG_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tuberag"), nil
}

// ConfigStore keeps configuration in a TOML file. Callers address
// values by dot-notation key ("embedding.provider"); on disk the keys
// become nested tables, so the file stays hand-editable.
type ConfigStore struct {
	mu   sync.RWMutex
	path string
	data map[string]any
}

// NewConfigStore opens the config file under configDir, creating the
// directory when needed. An empty configDir selects DefaultConfigDir.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		var err error
		if configDir, err = DefaultConfigDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	s := &ConfigStore{
		path: filepath.Join(configDir, configFileName),
		data: map[string]any{},
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the raw value stored under key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// GetString returns the string under key, or "" when absent or not a string.
func (s *ConfigStore) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

// GetInt returns the integer under key. TOML decodes integers as int64.
func (s *ConfigStore) GetInt(key string) int {
	v, _ := s.Get(key)
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

// GetFloat returns the number under key as a float64, accepting TOML
// integers as well.
func (s *ConfigStore) GetFloat(key string) float64 {
	v, _ := s.Get(key)
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

// GetBool returns the boolean under key, or false when absent.
func (s *ConfigStore) GetBool(key string) bool {
	v, _ := s.Get(key)
	b, _ := v.(bool)
	return b
}

// GetStringSlice returns the string list under key. TOML arrays
// decode as []any; non-string elements are dropped.
func (s *ConfigStore) GetStringSlice(key string) []string {
	v, _ := s.Get(key)
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// Set stores value under key and writes the file immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.write()
}

// Save writes the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write()
}

// Load re-reads the config file. A missing file leaves the store empty.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.data = map[string]any{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var nested map[string]any
	if err := toml.Unmarshal(raw, &nested); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(s.path), err)
	}

	s.data = map[string]any{}
	flattenInto(s.data, "", nested)
	return nil
}

// Path returns the config file location.
func (s *ConfigStore) Path() string {
	return s.path
}

// write marshals the nested form of the data. Callers hold mu.
func (s *ConfigStore) write() error {
	tree := toNested(s.data)
	if tree == nil {
		// Conflicting keys cannot nest; keep them as flat dotted keys.
		tree = s.data
	}
	raw, err := toml.Marshal(tree)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0600)
}

// flattenInto records nested tables under dot-notation keys so lookup
// code can address "embedding.provider" directly.
func flattenInto(dst map[string]any, prefix string, src map[string]any) {
	for key, value := range src {
		if prefix != "" {
			key = prefix + "." + key
		}
		if table, ok := value.(map[string]any); ok {
			flattenInto(dst, key, table)
			continue
		}
		dst[key] = value
	}
}

// toNested is the inverse of flattenInto: dotted keys become nested
// tables so the file reads as [embedding] sections rather than quoted
// flat keys. Returns nil when a key is both a value and a prefix of
// another key, which TOML tables cannot represent.
func toNested(flat map[string]any) map[string]any {
	root := map[string]any{}
	for key, value := range flat {
		parts := strings.Split(key, ".")
		node := root
		for _, part := range parts[:len(parts)-1] {
			next, ok := node[part]
			if !ok {
				child := map[string]any{}
				node[part] = child
				node = child
				continue
			}
			child, ok := next.(map[string]any)
			if !ok {
				return nil
			}
			node = child
		}
		leaf := parts[len(parts)-1]
		if _, taken := node[leaf]; taken {
			return nil
		}
		node[leaf] = value
	}
	return root
}
