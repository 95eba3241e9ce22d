package core

import (
	"context"
	"testing"
)

// NewTestDatabase opens a migrated in-memory sqlite database closed at test cleanup.
func NewTestDatabase(t testing.TB) *DatabaseManager {
	t.Helper()

	dm, err := New(DriverSQLite, ":memory:", 1, LogLevelSilent)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { dm.Close() })

	if err := dm.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return dm
}
