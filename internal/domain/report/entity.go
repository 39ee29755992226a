package report

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
)

// Shift is one reconstructed IN -> OUT interval. It is derived on every render and never stored.
type Shift struct {
	ClockIn  time.Time
	ClockOut time.Time
	// DurationHours is ClockOut - ClockIn in hours. Events are paired after an
	// ascending sort, so it is never negative. It is not clamped or rounded.
	DurationHours float64
}

// EmployeeReport is the summary of one roster entry.
type EmployeeReport struct {
	Employee employee.Employee
	// Events are the employee's raw events in ascending timestamp order.
	Events     []clock.ClockEvent
	Shifts     []Shift
	TotalHours float64
}

// Snapshot is a self-consistent read of the roster and the clock log at one point in time.
type Snapshot struct {
	Employees []employee.Employee
	Events    []clock.ClockEvent
	ReadAt    time.Time
}
