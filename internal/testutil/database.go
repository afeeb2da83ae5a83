// Package testutil provides test utilities for the classification engine,
// including in-memory database fixtures with automatic cleanup.
package testutil

import (
	"context"
	"testing"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/model"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/storage"
)

// SetupTestDB creates a new in-memory SQLite database with migrations
// applied and cleanup registered.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SeedReport saves a report with the given rows and returns it.
func SeedReport(t *testing.T, store *storage.SQLiteStorage, name string, rows []model.LedgerRow) *model.Report {
	t.Helper()

	report := &model.Report{
		Name:     name,
		FileName: name + ".csv",
		Month:    1,
		Year:     2024,
	}
	if err := store.SaveReport(context.Background(), report, rows); err != nil {
		t.Fatalf("failed to seed report %q: %v", name, err)
	}
	return report
}
