package hierarchy

import (
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/model"
)

// Sentinels holds the "unset" marker strings the upstream ledger exports
// use for unclassified fields. They are configuration, not constants, so
// deployments with different export conventions can tune them.
type Sentinels struct {
	Type     string
	Category string
	Final    string
}

// DefaultSentinels returns the sentinel values observed in production
// ledger exports.
func DefaultSentinels() Sentinels {
	return Sentinels{
		Type:     "Undefined",
		Category: "No Category",
		Final:    "No Classification",
	}
}

// Evaluator computes classification status for ledger rows. Status is
// always derived, never persisted.
type Evaluator struct {
	sentinels Sentinels
}

// NewEvaluator creates an evaluator with the given sentinel set. Empty
// sentinel fields fall back to the defaults.
func NewEvaluator(sentinels Sentinels) *Evaluator {
	defaults := DefaultSentinels()
	if sentinels.Type == "" {
		sentinels.Type = defaults.Type
	}
	if sentinels.Category == "" {
		sentinels.Category = defaults.Category
	}
	if sentinels.Final == "" {
		sentinels.Final = defaults.Final
	}
	return &Evaluator{sentinels: sentinels}
}

// Status reports whether a row is fully classified: all four taxonomy
// fields present and none equal to its sentinel. The sub-category has no
// sentinel; presence alone suffices.
func (e *Evaluator) Status(row model.LedgerRow) model.ClassificationStatus {
	c := row.Classification
	if c.Type == "" || c.Category == "" || c.SubCategory == "" || c.Final == "" {
		return model.StatusUnclassified
	}
	if c.Type == e.sentinels.Type ||
		c.Category == e.sentinels.Category ||
		c.Final == e.sentinels.Final {
		return model.StatusUnclassified
	}
	return model.StatusClassified
}
