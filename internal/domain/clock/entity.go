package clock

import (
	"time"
)

type EventType string

const (
	EventTypeIn  EventType = "IN"
	EventTypeOut EventType = "OUT"
)

func (t EventType) IsValid() bool {
	return t == EventTypeIn || t == EventTypeOut
}

// ClockEvent is one immutable entry of the clock log.
type ClockEvent struct {
	ID         string
	EmployeeID string
	// EmployeeName is the roster name at write time and may drift from the current roster.
	EmployeeName string
	Type         EventType
	// Timestamp is assigned by the store. Zero means the store has not resolved it yet.
	Timestamp time.Time
}
