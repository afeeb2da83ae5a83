// Package storage provides the SQLite persistence layer for ledger rows,
// reports, and classification rules.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptySlice   = errors.New("slice cannot be empty")
	ErrInvalidRow   = errors.New("invalid ledger row")
	ErrInvalidRule  = errors.New("invalid classification rule")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRows validates a slice of ledger rows.
func validateRows(rows []model.LedgerRow) error {
	if rows == nil {
		return fmt.Errorf("%w: rows", ErrNilParameter)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: rows", ErrEmptySlice)
	}

	for i, row := range rows {
		if err := validateRow(&row); err != nil {
			return fmt.Errorf("row at index %d: %w", i, err)
		}
	}
	return nil
}

// validateRow validates a single ledger row.
func validateRow(row *model.LedgerRow) error {
	if row == nil {
		return fmt.Errorf("%w: row", ErrNilParameter)
	}
	if row.AccountCode == "" {
		return fmt.Errorf("%w: missing account code", ErrInvalidRow)
	}
	if row.Label == "" {
		return fmt.Errorf("%w: missing label", ErrInvalidRow)
	}
	return nil
}

// validateRule validates a classification rule.
func validateRule(rule *model.ClassificationRule) error {
	if rule == nil {
		return fmt.Errorf("%w: rule", ErrNilParameter)
	}
	if strings.TrimSpace(rule.AccountCode) == "" {
		return fmt.Errorf("%w: missing account code", ErrInvalidRule)
	}
	if strings.TrimSpace(rule.AccountName) == "" {
		return fmt.Errorf("%w: missing account name", ErrInvalidRule)
	}
	if rule.Level < 1 || rule.Level > 4 {
		return fmt.Errorf("%w: level must be between 1 and 4, got %d", ErrInvalidRule, rule.Level)
	}
	return nil
}

// validateReport validates a report header.
func validateReport(report *model.Report) error {
	if report == nil {
		return fmt.Errorf("%w: report", ErrNilParameter)
	}
	if strings.TrimSpace(report.Name) == "" {
		return fmt.Errorf("%w: report name", ErrEmptyString)
	}
	if report.Month < 1 || report.Month > 12 {
		return fmt.Errorf("invalid report month: %d", report.Month)
	}
	if report.Year == 0 {
		return fmt.Errorf("invalid report year: %d", report.Year)
	}
	return nil
}
