package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	newEmployee.ID = newID()
	newEmployee.CreatedAt = r.store.now()
	r.store.employees[newEmployee.ID] = newEmployee
	r.store.changed()

	return newEmployee, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	emp, ok := r.store.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.rosterLocked(), nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.store.employees, id)
	r.store.changed()

	return nil
}

// rosterLocked returns the roster ordered by name. Callers hold s.mu.
func (s *Store) rosterLocked() []employee.Employee {
	employees := make([]employee.Employee, 0, len(s.employees))
	for _, emp := range s.employees {
		employees = append(employees, emp)
	}
	sort.Slice(employees, func(i, j int) bool {
		if employees[i].Name != employees[j].Name {
			return employees[i].Name < employees[j].Name
		}
		return employees[i].ID < employees[j].ID
	})
	return employees
}
