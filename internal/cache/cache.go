package cache

import "sync"

// Cache defines a generic cache interface
type Cache[T any] interface {
	// Get retrieves a value from the cache
	Get(key string) (T, bool)

	// Set stores a value in the cache
	Set(key string, data T)

	// Delete removes a key from the cache
	Delete(key string)

	// Size returns the current number of items in the cache
	Size() int
}

// Store is a mutex-protected map with no eviction. Entries live for the
// whole process, which is what the dataset loader needs: sources are static
// files, so a parsed table never goes stale within a session.
type Store[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewStore creates an empty Store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{items: make(map[string]T)}
}

func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

func (s *Store[T]) Set(key string, data T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = data
}

func (s *Store[T]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

func (s *Store[T]) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
