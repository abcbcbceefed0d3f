// Package store holds the in-memory resource collection of the reference
// server. Nothing is ever written to disk; restarting the server starts over
// with an empty collection.
package store

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Resource is one stored resource: the server assigned id and the document
// that was accepted for it.
type Resource struct {
	ID         string
	Attributes json.RawMessage
}

// Store is a thread safe in-memory collection of resources that remembers
// insertion order. Documents are copied on the way in and on the way out, so
// callers never alias the collection's own memory.
type Store struct {
	mu    sync.RWMutex
	items map[string]json.RawMessage
	order []string
}

func New() *Store {
	return &Store{items: make(map[string]json.RawMessage)}
}

// Create adds a document under a newly assigned id and returns the stored
// resource.
func (s *Store) Create(attributes json.RawMessage) Resource {
	id := uuid.NewString()
	copied := clone(attributes)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = copied
	s.order = append(s.order, id)
	return Resource{ID: id, Attributes: clone(copied)}
}

// Get returns the resource with the given id, if there is one.
func (s *Store) Get(id string) (Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attrs, ok := s.items[id]
	if !ok {
		return Resource{}, false
	}
	return Resource{ID: id, Attributes: clone(attrs)}, true
}

// Replace swaps the document stored under an existing id. It reports false
// if the id is unknown; Replace never creates resources.
func (s *Store) Replace(id string, attributes json.RawMessage) (Resource, bool) {
	copied := clone(attributes)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return Resource{}, false
	}
	s.items[id] = copied
	return Resource{ID: id, Attributes: clone(copied)}, true
}

// Delete removes the resource with the given id, reporting whether it
// existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// DeleteAll empties the collection and returns how many resources were
// removed.
func (s *Store) DeleteAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.items)
	s.items = make(map[string]json.RawMessage)
	s.order = nil
	return n
}

// List returns a consistent snapshot of the whole collection in insertion
// order.
func (s *Store) List() []Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resources := make([]Resource, 0, len(s.order))
	for _, id := range s.order {
		resources = append(resources, Resource{ID: id, Attributes: clone(s.items[id])})
	}
	return resources
}

// Len returns the number of stored resources.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func clone(data json.RawMessage) json.RawMessage {
	if data == nil {
		return nil
	}
	return append(json.RawMessage(nil), data...)
}
