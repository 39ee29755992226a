package clock

import "context"

// ClockService handles the PIN-gated terminal clock action
type ClockService interface {
	// Clock verifies the employee's PIN and appends one IN or OUT event
	Clock(ctx context.Context, req ClockRequest) (ClockEventResponse, error)
}
