package employee

import (
	"time"
)

// Employee is a roster entry. Only deletion changes it after creation.
type Employee struct {
	ID        string
	Name      string
	PIN       string
	CreatedAt time.Time
}

// MatchesPIN reports whether pin is exactly the employee's PIN.
func (e Employee) MatchesPIN(pin string) bool {
	return e.PIN != "" && e.PIN == pin
}
