package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type eventRepositoryImpl struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) clock.EventRepository {
	return &eventRepositoryImpl{db: db}
}

// Append implements clock.EventRepository. The timestamp is taken from the
// database clock, never from the caller.
func (r *eventRepositoryImpl) Append(ctx context.Context, event clock.ClockEvent) (clock.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return clock.ClockEvent{}, fmt.Errorf("failed to generate clock event id: %w", err)
	}

	query := `
		INSERT INTO clock_events (id, employee_id, employee_name, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, employee_id, employee_name, type, timestamp
	`

	var created clock.ClockEvent
	err = q.QueryRow(ctx, query, id.String(), event.EmployeeID, event.EmployeeName, event.Type).
		Scan(&created.ID, &created.EmployeeID, &created.EmployeeName, &created.Type, &created.Timestamp)
	if err != nil {
		return clock.ClockEvent{}, fmt.Errorf("failed to append clock event: %w", err)
	}

	return created, nil
}

// List implements clock.EventRepository.
func (r *eventRepositoryImpl) List(ctx context.Context) ([]clock.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, employee_name, type, timestamp
		FROM clock_events
		ORDER BY timestamp DESC, seq DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clock events: %w", err)
	}
	defer rows.Close()

	events := make([]clock.ClockEvent, 0)
	for rows.Next() {
		var ev clock.ClockEvent
		if err := rows.Scan(&ev.ID, &ev.EmployeeID, &ev.EmployeeName, &ev.Type, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan clock event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clock events: %w", err)
	}

	return events, nil
}
