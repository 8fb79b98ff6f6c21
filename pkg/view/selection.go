package view

import "sort"

// Selection is the set of finding keys picked for bulk actions such as export.
type Selection struct {
	keys map[string]struct{}
}

// NewSelection returns a selection holding keys.
func NewSelection(keys ...string) *Selection {
	s := &Selection{keys: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		if k != "" {
			s.keys[k] = struct{}{}
		}
	}
	return s
}

// Toggle flips membership of key and reports whether it is now selected.
func (s *Selection) Toggle(key string) bool {
	if _, ok := s.keys[key]; ok {
		delete(s.keys, key)
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

// Contains reports whether key is selected. A nil selection contains nothing.
func (s *Selection) Contains(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.keys[key]
	return ok
}

// Len is the number of selected keys.
func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.keys = make(map[string]struct{})
}

// Keys returns the selected keys in sorted order.
func (s *Selection) Keys() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
