package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/common"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/model"
)

const ledgerRowColumns = `id, report_id, account_code, label, amount,
	account_type, category, sub_category, final_classification, created_at, updated_at`

// SaveReport persists a report header and its rows in one transaction.
func (s *SQLiteStorage) SaveReport(ctx context.Context, report *model.Report, rows []model.LedgerRow) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateReport(report); err != nil {
		return err
	}
	if err := validateRows(rows); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if report.ID == "" {
		report.ID = uuid.NewString()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reports (id, name, file_name, month, year)
		VALUES (?, ?, ?, ?, ?)
	`, report.ID, report.Name, report.FileName, report.Month, report.Year)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ledger_rows (
			id, report_id, account_code, label, amount,
			account_type, category, sub_category, final_classification
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range rows {
		if row.ID == "" {
			row.ID = uuid.NewString()
		}
		_, err = stmt.ExecContext(ctx,
			row.ID,
			report.ID,
			row.AccountCode,
			row.Label,
			row.Amount.String(),
			row.Classification.Type,
			row.Classification.Category,
			row.Classification.SubCategory,
			row.Classification.Final,
		)
		if err != nil {
			return fmt.Errorf("failed to insert row %s: %w", row.AccountCode, err)
		}
	}

	return tx.Commit()
}

// GetReport returns a report header by id.
func (s *SQLiteStorage) GetReport(ctx context.Context, reportID string) (*model.Report, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(reportID, "reportID"); err != nil {
		return nil, err
	}

	var report model.Report
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, file_name, month, year, created_at
		FROM reports WHERE id = ?
	`, reportID).Scan(&report.ID, &report.Name, &report.FileName, &report.Month, &report.Year, &report.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: report %s", common.ErrNotFound, reportID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query report: %w", err)
	}

	return &report, nil
}

// GetReports returns all report headers, newest period first.
func (s *SQLiteStorage) GetReports(ctx context.Context) ([]model.Report, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, file_name, month, year, created_at
		FROM reports ORDER BY year DESC, month DESC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reports []model.Report
	for rows.Next() {
		var report model.Report
		if err := rows.Scan(&report.ID, &report.Name, &report.FileName, &report.Month, &report.Year, &report.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// GetRowsByReport returns all ledger rows in a report, ordered by account code.
func (s *SQLiteStorage) GetRowsByReport(ctx context.Context, reportID string) ([]model.LedgerRow, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(reportID, "reportID"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM ledger_rows WHERE report_id = ? ORDER BY account_code`, ledgerRowColumns)
	return s.queryRows(ctx, query, reportID)
}

// GetRowsByFamilyKey returns every row in the report whose account code
// starts with the 9-character family key.
func (s *SQLiteStorage) GetRowsByFamilyKey(ctx context.Context, reportID, familyKey string) ([]model.LedgerRow, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(reportID, "reportID"); err != nil {
		return nil, err
	}
	if err := validateString(familyKey, "familyKey"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM ledger_rows
		WHERE report_id = ? AND substr(account_code, 1, 9) = ?
		ORDER BY account_code
	`, ledgerRowColumns)
	return s.queryRows(ctx, query, reportID, familyKey)
}

// GetRowsByAccountCode returns rows matching the account code exactly,
// across all reports. Retroactive application matches by exact code, not
// by family.
func (s *SQLiteStorage) GetRowsByAccountCode(ctx context.Context, accountCode string) ([]model.LedgerRow, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(accountCode, "accountCode"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM ledger_rows
		WHERE account_code = ?
		ORDER BY report_id, id
	`, ledgerRowColumns)
	return s.queryRows(ctx, query, accountCode)
}

// UpdateRowClassification rewrites the four classification fields of a row.
func (s *SQLiteStorage) UpdateRowClassification(ctx context.Context, rowID string, c model.Classification) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(rowID, "rowID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE ledger_rows
		SET account_type = ?, category = ?, sub_category = ?,
			final_classification = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, c.Type, c.Category, c.SubCategory, c.Final, rowID)
	if err != nil {
		return fmt.Errorf("failed to update row classification: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: ledger row %s", common.ErrNotFound, rowID)
	}

	return nil
}

func (s *SQLiteStorage) queryRows(ctx context.Context, query string, args ...any) ([]model.LedgerRow, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []model.LedgerRow
	for rows.Next() {
		row, err := scanLedgerRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func scanLedgerRow(rows *sql.Rows) (model.LedgerRow, error) {
	var (
		row       model.LedgerRow
		amount    string
		updatedAt sql.NullTime
	)

	err := rows.Scan(
		&row.ID,
		&row.ReportID,
		&row.AccountCode,
		&row.Label,
		&amount,
		&row.Classification.Type,
		&row.Classification.Category,
		&row.Classification.SubCategory,
		&row.Classification.Final,
		&row.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return model.LedgerRow{}, fmt.Errorf("failed to scan ledger row: %w", err)
	}

	// Amounts are stored as text to keep decimal exactness. Missing or
	// unparseable amounts are treated as zero, not an error.
	row.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		row.Amount = decimal.Zero
	}
	if updatedAt.Valid {
		row.UpdatedAt = updatedAt.Time
	}

	return row, nil
}
