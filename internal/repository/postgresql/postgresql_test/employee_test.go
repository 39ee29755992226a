package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_CRUD(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	zoe, err := repo.Create(ctx, employee.Employee{Name: "Zoe", PIN: "0042"})
	require.NoError(t, err)
	assert.NotEmpty(t, zoe.ID)
	assert.False(t, zoe.CreatedAt.IsZero())

	ana, err := repo.Create(ctx, employee.Employee{Name: "Ana", PIN: "1234"})
	require.NoError(t, err)

	t.Run("get by id keeps leading zeros", func(t *testing.T) {
		got, err := repo.GetByID(ctx, zoe.ID)
		require.NoError(t, err)
		assert.Equal(t, "0042", got.PIN)
	})

	t.Run("list orders by name", func(t *testing.T) {
		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, ana.ID, list[0].ID)
		assert.Equal(t, zoe.ID, list[1].ID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, ana.ID))
		assert.ErrorIs(t, repo.Delete(ctx, ana.ID), employee.ErrEmployeeNotFound)

		_, err := repo.GetByID(ctx, ana.ID)
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}
