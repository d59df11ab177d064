package testutil

import (
	"context"
	"sync"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/domain/event"
	ierr "github.com/Gimmir/un1t-mobile-app-sub000/internal/errors"
)

// InMemoryEventRepository holds fixed event snapshots for service tests
type InMemoryEventRepository struct {
	mu     sync.RWMutex
	events []*event.Event
	// Err, when set, is returned by every call
	Err error
	// Calls counts fetches so cache behavior can be asserted
	Calls int
}

func NewInMemoryEventRepository(events ...*event.Event) *InMemoryEventRepository {
	return &InMemoryEventRepository{events: events}
}

func (r *InMemoryEventRepository) SetEvents(events []*event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = events
}

func (r *InMemoryEventRepository) ListEvents(_ context.Context) ([]*event.Event, error) {
	r.mu.Lock()
	r.Calls++
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*event.Event, len(r.events))
	copy(out, r.events)
	return out, nil
}

func (r *InMemoryEventRepository) GetEvent(_ context.Context, id string) (*event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, e := range r.events {
		if e != nil && e.ID == id {
			return e, nil
		}
	}
	return nil, ierr.NewError("event not found").
		WithHint("No event with this id in the fixture set").
		Mark(ierr.ErrNotFound)
}
