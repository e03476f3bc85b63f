// Package registry keeps named plugins such as renderers and format adapters.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Named is anything registered under its own name.
type Named interface {
	Name() string
}

// Set holds items keyed by their lower-cased, trimmed name. It is safe for
// concurrent use.
type Set[T Named] struct {
	kind string

	mu    sync.RWMutex
	items map[string]T
}

// New returns an empty set. kind prefixes error messages, for example
// "render: renderer".
func New[T Named](kind string) *Set[T] {
	return &Set[T]{kind: kind, items: make(map[string]T)}
}

// Key is the lookup form of name.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds item. Nil items, blank names and duplicates are errors.
func (s *Set[T]) Register(item T) error {
	if any(item) == nil {
		return errors.New(s.kind + " is required")
	}
	key := Key(item.Name())
	if key == "" {
		return errors.New(s.kind + " name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.items[key]; taken {
		return fmt.Errorf("%s %q already registered", s.kind, key)
	}
	s.items[key] = item
	return nil
}

// MustRegister panics when Register fails.
func (s *Set[T]) MustRegister(item T) {
	if err := s.Register(item); err != nil {
		panic(err)
	}
}

// Get looks name up case-insensitively.
func (s *Set[T]) Get(name string) (T, error) {
	key := Key(name)
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		var zero T
		if key == "" {
			return zero, errors.New(s.kind + " name is required")
		}
		return zero, fmt.Errorf("%s %q not found", s.kind, key)
	}
	return item, nil
}

// Has reports whether name is registered.
func (s *Set[T]) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[Key(name)]
	return ok
}

// List returns the registered keys in order.
func (s *Set[T]) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.items))
	for key := range s.items {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Items returns the registered items ordered by key.
func (s *Set[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.items))
	for key := range s.items {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	items := make([]T, 0, len(keys))
	for _, key := range keys {
		items = append(items, s.items[key])
	}
	return items
}
