package employee

import (
	"context"
)

// EmployeeService defines roster operations for the admin and terminal flows
type EmployeeService interface {
	// CreateEmployee adds an employee to the roster (admin only)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// ListEmployees returns the full roster including PINs (admin only)
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// DeleteEmployee removes an employee from the roster (admin only)
	DeleteEmployee(ctx context.Context, id string) error

	// ListTerminalEmployees returns the roster for the shared terminal, without PINs
	ListTerminalEmployees(ctx context.Context) ([]TerminalEmployeeResponse, error)
}
