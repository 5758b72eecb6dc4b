package catalog

import (
	"slices"
	"sync"
)

// Store is an in-memory course catalog safe for concurrent use.
// Readers always receive copies; the catalog can be swapped atomically
// with Replace.
type Store struct {
	mu      sync.RWMutex
	courses []Course
	byID    map[int64]int
}

// NewStore creates a store holding a copy of courses.
func NewStore(courses []Course) *Store {
	s := &Store{}
	s.Replace(courses)
	return s
}

// Replace swaps the catalog contents.
func (s *Store) Replace(courses []Course) {
	cloned := slices.Clone(courses)
	byID := make(map[int64]int, len(cloned))
	for i, c := range cloned {
		byID[c.ID] = i
	}

	s.mu.Lock()
	s.courses = cloned
	s.byID = byID
	s.mu.Unlock()
}

// All returns a copy of every course in catalog order.
func (s *Store) All() []Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.courses)
}

// Get returns the course with the given ID.
func (s *Store) Get(id int64) (Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return Course{}, false
	}
	return s.courses[i], true
}

// Len returns the number of courses.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.courses)
}
