// Package dismissal persists the set of finding keys a user has dismissed.
package dismissal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/afero"
)

// DefaultPath is where dismissals are kept when nothing else is configured.
const DefaultPath = ".scanboard/dismissed.json"

const fileVersion = 1

type fileFormat struct {
	Version int      `json:"version"`
	Keys    []string `json:"keys"`
}

// Store is a set of dismissed keys backed by a JSON file.
type Store struct {
	fs   afero.Fs
	path string

	mu   sync.RWMutex
	keys map[string]struct{}
}

// NewStore returns an empty store for path on fs. Call Load to read
// existing dismissals.
func NewStore(fs afero.Fs, path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{
		fs:   fs,
		path: path,
		keys: make(map[string]struct{}),
	}
}

// Open is NewStore on the OS filesystem followed by Load.
func Open(path string) (*Store, error) {
	s := NewStore(afero.NewOsFs(), path)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Load replaces the in-memory set with the contents of the backing file.
// A missing or empty file is an empty set. Both the versioned object and
// a bare JSON list of keys are accepted.
func (s *Store) Load() error {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("no dismissal file", "path", s.path)
			s.reset(nil)
			return nil
		}
		return fmt.Errorf("failed to read dismissals: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		s.reset(nil)
		return nil
	}

	var keys []string
	if data[0] == '[' {
		if err := json.Unmarshal(data, &keys); err != nil {
			return fmt.Errorf("failed to parse dismissals %s: %w", s.path, err)
		}
	} else {
		var f fileFormat
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("failed to parse dismissals %s: %w", s.path, err)
		}
		if f.Version > fileVersion {
			slog.Warn("dismissal file is newer than this binary", "path", s.path, "version", f.Version)
		}
		keys = f.Keys
	}

	s.reset(keys)
	slog.Debug("loaded dismissals", "path", s.path, "count", len(keys))
	return nil
}

func (s *Store) reset(keys []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k != "" {
			s.keys[k] = struct{}{}
		}
	}
}

// IsDismissed reports whether key is in the set.
func (s *Store) IsDismissed(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.keys[key]
	return ok
}

// Toggle flips membership of key, writes the set back, and reports whether
// key is now dismissed. On a write failure the in-memory set is restored.
func (s *Store) Toggle(key string) (bool, error) {
	if key == "" {
		return false, fmt.Errorf("empty dismissal key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, was := s.keys[key]
	if was {
		delete(s.keys, key)
	} else {
		s.keys[key] = struct{}{}
	}

	if err := s.save(); err != nil {
		if was {
			s.keys[key] = struct{}{}
		} else {
			delete(s.keys, key)
		}
		return was, err
	}
	return !was, nil
}

// Keys returns the dismissed keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

// Len is the number of dismissed keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

func (s *Store) sortedLocked() []string {
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// save must be called with mu held.
func (s *Store) save() error {
	data, err := json.MarshalIndent(fileFormat{Version: fileVersion, Keys: s.sortedLocked()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dismissals: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create dismissal directory: %w", err)
		}
	}
	if err := afero.WriteFile(s.fs, s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write dismissals: %w", err)
	}
	return nil
}
