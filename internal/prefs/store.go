// Package prefs stores viewer preferences (theme, active navigation tab)
// behind an explicit Store interface.
package prefs

import (
	"context"
	"sync"
)

// Store is a key-value preference medium with change notification.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set persists value and then notifies the key's subscribers.
	Set(ctx context.Context, key, value string) error
	// Subscribe registers fn for changes to key. The returned func
	// unsubscribes.
	Subscribe(key string, fn func(value string)) (cancel func())
}

// subscribers fans out Set notifications. Callbacks run synchronously on
// the setter's goroutine, outside the lock.
type subscribers struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]func(string)
}

func (s *subscribers) add(key string, fn func(string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[string]map[int]func(string))
	}
	if s.subs[key] == nil {
		s.subs[key] = make(map[int]func(string))
	}
	id := s.next
	s.next++
	s.subs[key][id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[key], id)
	}
}

func (s *subscribers) notify(key, value string) {
	s.mu.Lock()
	fns := make([]func(string), 0, len(s.subs[key]))
	for _, fn := range s.subs[key] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(value)
	}
}

// MemoryStore keeps preferences for the life of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	subscribers
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Store.
func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	m.notify(key, value)
	return nil
}

// Subscribe implements Store.
func (m *MemoryStore) Subscribe(key string, fn func(string)) func() {
	return m.add(key, fn)
}
