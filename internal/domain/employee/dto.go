package employee

import (
	"strings"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

// MaxPINLength matches the terminal keypad input limit.
const MaxPINLength = 6

type CreateEmployeeRequest struct {
	Name string `json:"name"`
	PIN  string `json:"pin"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.PIN = strings.TrimSpace(r.PIN)

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: ErrNameRequired.Error(),
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if !validator.IsValidPIN(r.PIN, MaxPINLength) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: ErrInvalidPIN.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PIN       string `json:"pin"`
	CreatedAt string `json:"created_at"`
}

// TerminalEmployeeResponse is what the shared terminal sees. PINs are never included.
type TerminalEmployeeResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	HasPIN bool   `json:"has_pin"`
}
