package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/config"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/storage"
)

// initStorage initializes the storage layer with proper path expansion and
// auto-migration.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/ledgerclass/ledgerclass.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
