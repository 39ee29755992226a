package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// newTestDatabase connects to TEST_DATABASE_URL, applies migrations and
// empties the tables. Tests are skipped when the variable is unset.
func newTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	require.NoError(t, database.MigrateUp(dsn))

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = db.Exec(ctx, "TRUNCATE TABLE employees, clock_events")
	require.NoError(t, err)

	return db
}
