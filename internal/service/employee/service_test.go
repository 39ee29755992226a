package employee

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmployeeService() employee.EmployeeService {
	return NewEmployeeService(memory.NewEmployeeRepository(memory.NewStore()))
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()
	svc := newTestEmployeeService()

	t.Run("trims and stores", func(t *testing.T) {
		resp, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "  Ana  ", PIN: " 0042 "})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "Ana", resp.Name)
		assert.Equal(t, "0042", resp.PIN)
		assert.NotEmpty(t, resp.CreatedAt)
	})

	t.Run("duplicate names are allowed", func(t *testing.T) {
		_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Ana", PIN: "1111"})
		require.NoError(t, err)
	})

	tests := []struct {
		name  string
		req   employee.CreateEmployeeRequest
		field string
	}{
		{"missing name", employee.CreateEmployeeRequest{PIN: "1234"}, "name"},
		{"missing pin", employee.CreateEmployeeRequest{Name: "Ana"}, "pin"},
		{"pin with letters", employee.CreateEmployeeRequest{Name: "Ana", PIN: "12a4"}, "pin"},
		{"pin too long", employee.CreateEmployeeRequest{Name: "Ana", PIN: "1234567"}, "pin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateEmployee(ctx, tt.req)
			var validationErrs validator.ValidationErrors
			require.ErrorAs(t, err, &validationErrs)
			assert.Contains(t, validationErrs.ToMap(), tt.field)
		})
	}
}

func TestListEmployees(t *testing.T) {
	ctx := context.Background()
	svc := newTestEmployeeService()

	empty, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, name := range []string{"Zoe", "Ana", "Luis"} {
		_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: name, PIN: "1234"})
		require.NoError(t, err)
	}

	list, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Ana", list[0].Name)
	assert.Equal(t, "Luis", list[1].Name)
	assert.Equal(t, "Zoe", list[2].Name)
	assert.Equal(t, "1234", list[0].PIN)
}

func TestListTerminalEmployees_HidesPIN(t *testing.T) {
	ctx := context.Background()
	svc := newTestEmployeeService()

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Ana", PIN: "1234"})
	require.NoError(t, err)

	list, err := svc.ListTerminalEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, employee.TerminalEmployeeResponse{ID: created.ID, Name: "Ana", HasPIN: true}, list[0])
}

func TestDeleteEmployee(t *testing.T) {
	ctx := context.Background()
	svc := newTestEmployeeService()

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Ana", PIN: "1234"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEmployee(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteEmployee(ctx, created.ID), employee.ErrEmployeeNotFound)

	list, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
