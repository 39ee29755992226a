package firestore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type employeeDoc struct {
	Name      string    `firestore:"name"`
	PIN       string    `firestore:"pin"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp"`
}

func (d employeeDoc) toEntity(id string) employee.Employee {
	return employee.Employee{
		ID:        id,
		Name:      d.Name,
		PIN:       d.PIN,
		CreatedAt: d.CreatedAt,
	}
}

type employeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	ref := r.store.employees().NewDoc()

	wr, err := ref.Create(ctx, employeeDoc{Name: newEmployee.Name, PIN: newEmployee.PIN})
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee.Employee{
		ID:        ref.ID,
		Name:      newEmployee.Name,
		PIN:       newEmployee.PIN,
		CreatedAt: wr.UpdateTime,
	}, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if id == "" {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	snap, err := r.store.employees().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return decodeEmployee(snap)
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	docs, err := r.store.employees().Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return decodeEmployees(docs)
}

// Delete implements employee.EmployeeRepository. Time logs are left untouched.
func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return employee.ErrEmployeeNotFound
	}

	_, err := r.store.employees().Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

func decodeEmployee(snap *firestore.DocumentSnapshot) (employee.Employee, error) {
	var doc employeeDoc
	if err := snap.DataTo(&doc); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to decode employee %s: %w", snap.Ref.ID, err)
	}
	return doc.toEntity(snap.Ref.ID), nil
}

// decodeEmployees returns the roster ordered by name, then id.
func decodeEmployees(docs []*firestore.DocumentSnapshot) ([]employee.Employee, error) {
	employees := make([]employee.Employee, 0, len(docs))
	for _, snap := range docs {
		emp, err := decodeEmployee(snap)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	sort.Slice(employees, func(i, j int) bool {
		if employees[i].Name != employees[j].Name {
			return employees[i].Name < employees[j].Name
		}
		return employees[i].ID < employees[j].ID
	})
	return employees, nil
}
