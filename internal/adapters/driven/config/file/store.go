package file

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/pavedocs/paver/internal/core/domain"
)

// Store is a writable view of one .pave.toml, backing the config
// subcommand. Keys use dot notation ("rules.max_lines"); values are stored
// nested so the file keeps its table structure on save.
type Store struct {
	mu   sync.RWMutex
	path string
	data map[string]any
}

// OpenStore loads the config file at path, or starts empty when the file
// does not exist yet.
func OpenStore(path string) (*Store, error) {
	s := &Store{path: path, data: make(map[string]any)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrConfig, path, err)
	}
	if err := toml.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrConfig, path, err)
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get retrieves a value by dotted key.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node := s.data
	parts := strings.Split(key, ".")
	for i, part := range parts {
		val, ok := node[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		node, ok = val.(map[string]any)
		if !ok {
			return nil, false
		}
	}
	return nil, false
}

// Set stores a value under a dotted key, creating intermediate tables as
// needed, and persists immediately.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := s.data
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[part] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = value
	return s.save()
}

// List returns every leaf as a dotted key, sorted.
func (s *Store) List() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return flatten(s.data, "")
}

// Keys returns the sorted dotted keys of every leaf.
func (s *Store) Keys() []string {
	leaves := s.List()
	keys := make([]string, 0, len(leaves))
	for k := range leaves {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// save writes the nested data back to disk. Caller holds the lock.
func (s *Store) save() error {
	raw, err := toml.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrConfig, s.path, err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrConfig, s.path, err)
	}
	return nil
}

// flatten converts nested tables to dot-notation leaves,
// e.g. {"rules": {"max_lines": 300}} becomes {"rules.max_lines": 300}.
func flatten(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)
	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			for k, v := range flatten(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}
	return result
}
