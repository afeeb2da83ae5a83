package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClassificationChange records one ledger row rewritten by a retroactive
// rule application, with before and after snapshots.
type ClassificationChange struct {
	ReportID    string
	AccountCode string
	Old         Classification
	New         Classification
	Amount      decimal.Decimal
}

// SkippedChange records a ledger row that could not be rewritten. Skips
// never abort the batch; they are reported so the caller can decide whether
// partial success is acceptable.
type SkippedChange struct {
	RowID  string
	Reason string
}

// RetroactiveImpact is the auditable result of applying a rule change to
// historical ledger rows. It reflects the current pass only: re-applying an
// identical update recomputes the financial impact from scratch.
type RetroactiveImpact struct {
	FamilyCode          string
	AffectedReports     []string
	Changes             []ClassificationChange
	Skipped             []SkippedChange
	TotalImpact         decimal.Decimal
	EstimatedProcessing time.Duration
}

// AffectedRecords is the number of rows successfully rewritten.
func (i *RetroactiveImpact) AffectedRecords() int {
	return len(i.Changes)
}
