// Package memory holds map-backed implementations of the repository
// contracts. They enforce the same uniqueness rules as the SQL schema and
// back the test suite; nothing here is safe to use as durable storage.
package memory

import "sync"

type store[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

func newStore[T any]() *store[T] {
	return &store[T]{items: make(map[string]T)}
}

func (s *store[T]) get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[id]
	return v, ok
}

// all returns items in insertion order.
func (s *store[T]) all() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		if v, ok := s.items[id]; ok {
			out = append(out, v)
		}
	}
	return out
}

func (s *store[T]) put(id string, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[id]; !exists {
		s.order = append(s.order, id)
	}
	s.items[id] = v
}

func (s *store[T]) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *store[T]) find(pred func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if v, ok := s.items[id]; ok && pred(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}
