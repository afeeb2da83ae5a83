// Package service defines the interfaces and request/response shapes for
// all application services.
package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/model"
)

// LedgerStore defines the contract for ledger row persistence.
type LedgerStore interface {
	// SaveReport persists a report and its rows atomically.
	SaveReport(ctx context.Context, report *model.Report, rows []model.LedgerRow) error
	GetReport(ctx context.Context, reportID string) (*model.Report, error)
	GetReports(ctx context.Context) ([]model.Report, error)
	GetRowsByReport(ctx context.Context, reportID string) ([]model.LedgerRow, error)
	// GetRowsByFamilyKey returns every row in the report whose account code
	// starts with the family key.
	GetRowsByFamilyKey(ctx context.Context, reportID, familyKey string) ([]model.LedgerRow, error)
	// GetRowsByAccountCode returns rows matching the code exactly, across
	// all reports.
	GetRowsByAccountCode(ctx context.Context, accountCode string) ([]model.LedgerRow, error)
	UpdateRowClassification(ctx context.Context, rowID string, c model.Classification) error
}

// RuleStore defines the contract for classification rule persistence.
type RuleStore interface {
	CreateRule(ctx context.Context, rule *model.ClassificationRule) error
	GetRule(ctx context.Context, id string) (*model.ClassificationRule, error)
	GetActiveRules(ctx context.Context) ([]model.ClassificationRule, error)
	UpdateRule(ctx context.Context, rule *model.ClassificationRule) error
	DeactivateRule(ctx context.Context, id string) error
}

// Storage is the full persistence contract implemented by the sqlite layer.
type Storage interface {
	LedgerStore
	RuleStore
	Migrate(ctx context.Context) error
	Close() error
}

// RuleUpdateRequest carries a partial rule update and whether to propagate
// it to historical ledger rows.
type RuleUpdateRequest struct {
	RuleID             string
	UserID             string
	Updates            model.ClassificationUpdate
	ApplyRetroactively bool
}

// BulkSaveRequest persists a batch of reclassified rows as a named report.
type BulkSaveRequest struct {
	Rows       []model.LedgerRow
	ReportName string
	FileName   string
	Month      int
	Year       int
}

// RuleListing is the projection returned by the rule listing operation.
// UsageCount is a placeholder: computing real usage is out of scope for
// the listing call.
type RuleListing struct {
	LastModified   time.Time
	ID             string
	AccountCode    string
	AccountName    string
	Classification model.Classification
	Level          int
	UsageCount     int
}

// ReportSummary aggregates classification progress for one report.
type ReportSummary struct {
	Report             model.Report
	TotalRows          int
	ClassifiedRows     int
	UnclassifiedAmount decimal.Decimal
}

// RetryOptions configures retry behavior for store-facing callers.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
