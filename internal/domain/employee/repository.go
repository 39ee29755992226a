package employee

import "context"

// EmployeeRepository is the roster store.
type EmployeeRepository interface {
	// Create stores a new employee. The store assigns ID and CreatedAt.
	Create(ctx context.Context, newEmployee Employee) (Employee, error)

	// GetByID returns ErrEmployeeNotFound when no employee has the given id.
	GetByID(ctx context.Context, id string) (Employee, error)

	// List returns the whole roster ordered by name.
	List(ctx context.Context) ([]Employee, error)

	// Delete removes an employee. Clock events keyed by the id are left untouched.
	Delete(ctx context.Context, id string) error
}
