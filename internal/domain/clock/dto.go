package clock

import (
	"strings"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

type ClockRequest struct {
	EmployeeID string `json:"employee_id"`
	PIN        string `json:"pin"`
	Type       string `json:"type"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	// The PIN itself is checked against the roster, only presence is validated here
	if r.PIN == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin is required",
		})
	}

	if !EventType(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: ErrInvalidEventType.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockEventResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Type         string `json:"type"`
	Timestamp    string `json:"timestamp"`
	Message      string `json:"message"`
}
