package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report identifies one ingested ledger export.
type Report struct {
	CreatedAt time.Time
	ID        string
	Name      string
	FileName  string
	Month     int
	Year      int
}

// LedgerRow is a single account line belonging to exactly one report.
// The ledger store owns persistence; the classification engine only reads
// and rewrites the Classification fields.
type LedgerRow struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ID             string
	ReportID       string
	AccountCode    string
	Label          string
	Classification Classification
	Amount         decimal.Decimal
}
