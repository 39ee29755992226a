package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:        emp.ID,
		Name:      emp.Name,
		PIN:       emp.PIN,
		CreatedAt: emp.CreatedAt.Format(time.RFC3339),
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Name: req.Name,
		PIN:  req.PIN,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("Employee added to roster", "employee_id", created.ID)
	return mapEmployeeToResponse(created), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}
	return responses, nil
}

// DeleteEmployee implements employee.EmployeeService. The employee's clock
// history stays in the log but no longer shows up in reports.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("Employee removed from roster", "employee_id", id)
	return nil
}

// ListTerminalEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListTerminalEmployees(ctx context.Context) ([]employee.TerminalEmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.TerminalEmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.TerminalEmployeeResponse{
			ID:     emp.ID,
			Name:   emp.Name,
			HasPIN: emp.PIN != "",
		})
	}
	return responses, nil
}
