package memory

import (
	"context"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/clock"
)

type eventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) clock.EventRepository {
	return &eventRepository{store: store}
}

// Append implements clock.EventRepository.
func (r *eventRepository) Append(ctx context.Context, event clock.ClockEvent) (clock.ClockEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	event.ID = newID()
	event.Timestamp = r.store.stamp()
	r.store.events = append(r.store.events, event)
	r.store.changed()

	return event, nil
}

// List implements clock.EventRepository.
func (r *eventRepository) List(ctx context.Context) ([]clock.ClockEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.eventsLocked(), nil
}

// eventsLocked returns the log newest first. Events are stored in stamp
// order, so reversing is enough. Callers hold s.mu.
func (s *Store) eventsLocked() []clock.ClockEvent {
	events := make([]clock.ClockEvent, len(s.events))
	for i, e := range s.events {
		events[len(s.events)-1-i] = e
	}
	return events
}
