package clock

import "context"

// EventRepository is the append-only clock log.
type EventRepository interface {
	// Append writes one event. The store assigns ID and Timestamp; any values set by the caller are ignored.
	Append(ctx context.Context, event ClockEvent) (ClockEvent, error)

	// List returns every event, newest first.
	List(ctx context.Context) ([]ClockEvent, error)
}
