package audit

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Store is the append-only audit sink. Events are never updated or deleted.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByDeed(ctx context.Context, deedID uuid.UUID) ([]Event, error)
}

// InMemoryStore keeps events in process memory, grouped by deed.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[uuid.UUID][]Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[uuid.UUID][]Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.DeedID] = append(s.events[event.DeedID], event)
	return nil
}

func (s *InMemoryStore) ListByDeed(_ context.Context, deedID uuid.UUID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[deedID]...), nil
}

// ListAll returns every recorded event, for admin inspection and tests.
func (s *InMemoryStore) ListAll(_ context.Context) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []Event
	for _, deedEvents := range s.events {
		all = append(all, deedEvents...)
	}
	return all, nil
}
