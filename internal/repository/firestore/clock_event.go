package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/clock"
)

type timeLogDoc struct {
	EmployeeID   string `firestore:"employeeId"`
	EmployeeName string `firestore:"employeeName"`
	Type         string `firestore:"type"`
	// Timestamp is nil while the server timestamp of a pending write is unresolved.
	Timestamp *time.Time `firestore:"timestamp"`
}

func (d timeLogDoc) toEntity(id string) clock.ClockEvent {
	event := clock.ClockEvent{
		ID:           id,
		EmployeeID:   d.EmployeeID,
		EmployeeName: d.EmployeeName,
		Type:         clock.EventType(d.Type),
	}
	if d.Timestamp != nil {
		event.Timestamp = *d.Timestamp
	}
	return event
}

type eventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) clock.EventRepository {
	return &eventRepository{store: store}
}

// Append implements clock.EventRepository.
func (r *eventRepository) Append(ctx context.Context, event clock.ClockEvent) (clock.ClockEvent, error) {
	ref := r.store.timeLogs().NewDoc()

	wr, err := ref.Create(ctx, map[string]any{
		"employeeId":   event.EmployeeID,
		"employeeName": event.EmployeeName,
		"type":         string(event.Type),
		"timestamp":    firestore.ServerTimestamp,
	})
	if err != nil {
		return clock.ClockEvent{}, fmt.Errorf("failed to append clock event: %w", err)
	}

	event.ID = ref.ID
	event.Timestamp = wr.UpdateTime
	return event, nil
}

// List implements clock.EventRepository.
func (r *eventRepository) List(ctx context.Context) ([]clock.ClockEvent, error) {
	docs, err := r.store.timeLogs().OrderBy("timestamp", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list clock events: %w", err)
	}
	return decodeEvents(docs)
}

func decodeEvents(docs []*firestore.DocumentSnapshot) ([]clock.ClockEvent, error) {
	events := make([]clock.ClockEvent, 0, len(docs))
	for _, snap := range docs {
		var doc timeLogDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode time log %s: %w", snap.Ref.ID, err)
		}
		events = append(events, doc.toEntity(snap.Ref.ID))
	}
	return events, nil
}
