// Package engine implements retroactive application of classification rule
// changes across historical ledger rows.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/common"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/model"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/service"
)

// perRecordCost is the linear heuristic behind the estimated processing
// time. It has no measured basis; treat the estimate as a placeholder
// metric, not a contract.
const perRecordCost = 2 * time.Millisecond

// Engine applies rule changes, optionally propagating them to every ledger
// row matching the rule's account code exactly. The per-row writes are
// independent and not wrapped in a transaction: a failure on one row never
// aborts or rolls back the rest, and concurrent applications on the same
// account code race last-write-wins.
type Engine struct {
	rules  service.RuleStore
	ledger service.LedgerStore
	now    func() time.Time
}

// New creates a retroactive application engine.
func New(rules service.RuleStore, ledger service.LedgerStore) *Engine {
	return &Engine{
		rules:  rules,
		ledger: ledger,
		now:    time.Now,
	}
}

// ApplyRule persists a partial update onto the rule, then, when requested,
// rewrites the classification of every historical row sharing the rule's
// account code and reports the financial impact of doing so.
func (e *Engine) ApplyRule(ctx context.Context, req service.RuleUpdateRequest) (*model.RetroactiveImpact, error) {
	if strings.TrimSpace(req.RuleID) == "" {
		return nil, fmt.Errorf("%w: missing rule id", common.ErrValidation)
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, fmt.Errorf("%w: missing user id", common.ErrValidation)
	}
	if req.Updates.IsZero() {
		return nil, fmt.Errorf("%w: no classification updates given", common.ErrValidation)
	}

	rule, err := e.rules.GetRule(ctx, req.RuleID)
	if err != nil {
		return nil, fmt.Errorf("loading rule %s: %w", req.RuleID, err)
	}

	// Partial update: omitted fields keep the rule's current values.
	merged := req.Updates.ApplyTo(rule.Classification)
	rule.Classification = merged
	rule.UpdatedAt = e.now()

	if err := e.rules.UpdateRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("%w: updating rule %s: %v", common.ErrStoreUnavailable, req.RuleID, err)
	}

	impact := &model.RetroactiveImpact{FamilyCode: rule.FamilyCode}

	if !req.ApplyRetroactively {
		return impact, nil
	}

	rows, err := e.ledger.GetRowsByAccountCode(ctx, rule.AccountCode)
	if err != nil {
		return nil, fmt.Errorf("%w: enumerating rows for %s: %v", common.ErrStoreUnavailable, rule.AccountCode, err)
	}

	slog.Info("Applying rule retroactively",
		"rule_id", rule.ID,
		"account_code", rule.AccountCode,
		"user_id", req.UserID,
		"candidate_rows", len(rows))

	seenReports := make(map[string]bool)
	for _, row := range rows {
		old := row.Classification

		if writeErr := e.ledger.UpdateRowClassification(ctx, row.ID, merged); writeErr != nil {
			// Best effort: record the skip and keep going.
			slog.Warn("Skipping row during retroactive application",
				"row_id", row.ID,
				"report_id", row.ReportID,
				"error", writeErr)
			impact.Skipped = append(impact.Skipped, model.SkippedChange{
				RowID:  row.ID,
				Reason: writeErr.Error(),
			})
			continue
		}

		impact.Changes = append(impact.Changes, model.ClassificationChange{
			ReportID:    row.ReportID,
			AccountCode: row.AccountCode,
			Old:         old,
			New:         merged,
			Amount:      row.Amount,
		})
		if !seenReports[row.ReportID] {
			seenReports[row.ReportID] = true
			impact.AffectedReports = append(impact.AffectedReports, row.ReportID)
		}
		impact.TotalImpact = impact.TotalImpact.Add(row.Amount.Abs())
	}

	impact.EstimatedProcessing = time.Duration(len(impact.Changes)) * perRecordCost

	slog.Info("Retroactive application complete",
		"rule_id", rule.ID,
		"affected_records", impact.AffectedRecords(),
		"affected_reports", len(impact.AffectedReports),
		"skipped", len(impact.Skipped),
		"total_impact", impact.TotalImpact.String())

	return impact, nil
}
