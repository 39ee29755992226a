package clock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
)

type ClockServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	eventRepo    clock.EventRepository
	loc          *time.Location
}

func NewClockService(employeeRepo employee.EmployeeRepository, eventRepo clock.EventRepository, loc *time.Location) clock.ClockService {
	if loc == nil {
		loc = time.Local
	}
	return &ClockServiceImpl{
		employeeRepo: employeeRepo,
		eventRepo:    eventRepo,
		loc:          loc,
	}
}

// Clock implements clock.ClockService. Repeated submissions are not
// deduplicated; a second IN simply replaces the first when shifts are built.
func (s *ClockServiceImpl) Clock(ctx context.Context, req clock.ClockRequest) (clock.ClockEventResponse, error) {
	if err := req.Validate(); err != nil {
		return clock.ClockEventResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return clock.ClockEventResponse{}, err
	}

	if !emp.MatchesPIN(req.PIN) {
		slog.Warn("Clock action rejected, PIN mismatch", "employee_id", emp.ID)
		return clock.ClockEventResponse{}, clock.ErrInvalidPIN
	}

	created, err := s.eventRepo.Append(ctx, clock.ClockEvent{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Type:         clock.EventType(req.Type),
	})
	if err != nil {
		return clock.ClockEventResponse{}, fmt.Errorf("failed to record clock event: %w", err)
	}

	slog.Info("Clock event recorded", "employee_id", emp.ID, "type", created.Type)

	return clock.ClockEventResponse{
		ID:           created.ID,
		EmployeeID:   created.EmployeeID,
		EmployeeName: created.EmployeeName,
		Type:         string(created.Type),
		Timestamp:    created.Timestamp.In(s.loc).Format(time.RFC3339),
		Message:      confirmationMessage(created.Type, emp.Name),
	}, nil
}

func confirmationMessage(t clock.EventType, name string) string {
	if t == clock.EventTypeIn {
		return fmt.Sprintf("Welcome, %s! Clock-in recorded.", name)
	}
	return fmt.Sprintf("Goodbye, %s! Clock-out recorded.", name)
}
