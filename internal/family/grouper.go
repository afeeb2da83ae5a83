// Package family groups sibling accounts sharing a common ancestor and
// recommends a classification strategy per family.
package family

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/common"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/hierarchy"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/model"
)

// UnknownFamilyName is used when no row in the family carries a usable label.
const UnknownFamilyName = "Unknown Family"

// RowSource fetches the rows the grouper aggregates over.
type RowSource interface {
	GetRowsByFamilyKey(ctx context.Context, reportID, familyKey string) ([]model.LedgerRow, error)
}

// Sibling is one account at the inspected level, with its derived status.
type Sibling struct {
	Row    model.LedgerRow
	Status model.ClassificationStatus
}

// Context is the request-scoped classification picture of one family at
// one hierarchy level. It is computed on demand and never persisted.
type Context struct {
	FamilyKey          string
	FamilyName         string
	Level              hierarchy.Level
	Siblings           []Sibling
	ClassifiedCount    int
	UnclassifiedCount  int
	Completeness       float64
	Recommended        Strategy
	HasMixedSiblings   bool
	UnclassifiedAmount decimal.Decimal
}

// Config holds the tunables injected into the grouper.
type Config struct {
	Sentinels       hierarchy.Sentinels
	DetailThreshold int
}

// Grouper builds family contexts from a report's rows.
type Grouper struct {
	rows        RowSource
	evaluator   *hierarchy.Evaluator
	recommender *Recommender
}

// NewGrouper creates a grouper backed by the given row source.
func NewGrouper(rows RowSource, cfg Config) *Grouper {
	return &Grouper{
		rows:        rows,
		evaluator:   hierarchy.NewEvaluator(cfg.Sentinels),
		recommender: NewRecommender(cfg.DetailThreshold),
	}
}

// Context computes the family context for the account code within one
// report. Rows with malformed codes are skipped rather than failing the
// whole request.
func (g *Grouper) Context(ctx context.Context, accountCode, reportID string) (*Context, error) {
	if strings.TrimSpace(accountCode) == "" {
		return nil, fmt.Errorf("%w: missing account code", common.ErrValidation)
	}
	if strings.TrimSpace(reportID) == "" {
		return nil, fmt.Errorf("%w: missing report id", common.ErrValidation)
	}

	code, err := hierarchy.ParseCode(accountCode)
	if err != nil {
		return nil, err
	}

	key := code.FamilyKey()
	level := code.Level()

	fetched, err := g.rows.GetRowsByFamilyKey(ctx, reportID, key)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching family rows: %v", common.ErrStoreUnavailable, err)
	}

	fc := &Context{
		FamilyKey:          key,
		FamilyName:         UnknownFamilyName,
		Level:              level,
		UnclassifiedAmount: decimal.Zero,
	}

	siblingsByLevel := make(map[hierarchy.Level]int)
	for _, row := range fetched {
		rowCode, parseErr := hierarchy.ParseCode(row.AccountCode)
		if parseErr != nil {
			slog.Debug("Skipping row with malformed account code",
				"account_code", row.AccountCode,
				"report_id", reportID)
			continue
		}

		rowLevel := rowCode.Level()
		siblingsByLevel[rowLevel]++

		// First usable label wins as fallback; the family root's label
		// takes precedence whenever present.
		if fc.FamilyName == UnknownFamilyName && row.Label != "" {
			fc.FamilyName = row.Label
		}
		if rowLevel == hierarchy.LevelFamilyRoot && row.Label != "" {
			fc.FamilyName = row.Label
		}

		if rowLevel != level {
			continue
		}

		status := g.evaluator.Status(row)
		fc.Siblings = append(fc.Siblings, Sibling{Row: row, Status: status})
		if status == model.StatusClassified {
			fc.ClassifiedCount++
		} else {
			fc.UnclassifiedCount++
			fc.UnclassifiedAmount = fc.UnclassifiedAmount.Add(row.Amount)
		}
	}

	if total := len(fc.Siblings); total > 0 {
		fc.Completeness = float64(fc.ClassifiedCount) / float64(total) * 100
	}
	fc.HasMixedSiblings = fc.ClassifiedCount > 0 && fc.UnclassifiedCount > 0
	fc.Recommended = g.recommender.Recommend(siblingsByLevel, level)

	return fc, nil
}
