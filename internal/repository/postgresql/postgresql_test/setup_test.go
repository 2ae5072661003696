package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

var tables = []string{
	"attendance_records",
	"leave_applications",
	"overtime_applications",
	"holiday_configs",
	"work_shifts",
	"attendance_groups",
}

// newTestDatabase connects to TEST_DATABASE_URL, applies the schema and
// empties every table. Tests are skipped when the variable is unset.
func newTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(db.Close)

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)
	_, err = db.Exec(ctx, string(schema))
	require.NoError(t, err, "failed to apply schema")

	truncateAllTables(t, ctx, db)
	return db
}

func truncateAllTables(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()

	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}

	require.NoError(t, tx.Commit(ctx))
}
