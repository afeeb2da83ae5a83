package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a
// fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS reports (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					file_name TEXT,
					month INTEGER NOT NULL,
					year INTEGER NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_reports_period ON reports(year, month)`,

				`CREATE TABLE IF NOT EXISTS ledger_rows (
					id TEXT PRIMARY KEY,
					report_id TEXT NOT NULL,
					account_code TEXT NOT NULL,
					label TEXT NOT NULL,
					amount TEXT NOT NULL DEFAULT '0',
					account_type TEXT DEFAULT '',
					category TEXT DEFAULT '',
					sub_category TEXT DEFAULT '',
					final_classification TEXT DEFAULT '',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME,
					FOREIGN KEY (report_id) REFERENCES reports(id)
				)`,
				`CREATE INDEX idx_ledger_rows_report ON ledger_rows(report_id)`,
				`CREATE INDEX idx_ledger_rows_code ON ledger_rows(account_code)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add classification rules table",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS classification_rules (
					id TEXT PRIMARY KEY,
					account_code TEXT NOT NULL,
					account_name TEXT NOT NULL,
					account_type TEXT DEFAULT '',
					category TEXT DEFAULT '',
					sub_category TEXT DEFAULT '',
					final_classification TEXT DEFAULT '',
					hierarchy_level INTEGER NOT NULL,
					family_code TEXT NOT NULL,
					effective_from DATETIME NOT NULL,
					effective_to DATETIME,
					created_by TEXT NOT NULL,
					approved_by TEXT DEFAULT '',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME,
					is_active BOOLEAN DEFAULT 1
				)`,
				`CREATE INDEX idx_rules_code ON classification_rules(account_code)`,
				`CREATE INDEX idx_rules_active ON classification_rules(is_active)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Index family key prefix lookups",
		Up: func(tx *sql.Tx) error {
			// Family lookups filter on substr(account_code, 1, 9).
			_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_ledger_rows_family
				ON ledger_rows(report_id, substr(account_code, 1, 9))`)
			if err != nil {
				return fmt.Errorf("failed to create family index: %w", err)
			}
			return nil
		},
	},
}

// Migrate applies any pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
