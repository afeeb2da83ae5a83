package family

import (
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/hierarchy"
)

// Strategy is a recommended classification approach for a family.
type Strategy string

// Classification strategies.
const (
	// StrategyDetail classifies each detail account individually.
	StrategyDetail Strategy = "DETAIL_CLASSIFICATION"
	// StrategySummary classifies at the subcategory level.
	StrategySummary Strategy = "SUMMARY_CLASSIFICATION"
	// StrategyHighLevel classifies at the family root or above.
	StrategyHighLevel Strategy = "HIGH_LEVEL_CLASSIFICATION"
)

// DefaultDetailThreshold is the largest detail sibling set still worth
// classifying account-by-account.
const DefaultDetailThreshold = 15

// Recommender chooses a classification strategy for a family. The decision
// table is deterministic and side-effect-free.
type Recommender struct {
	detailThreshold int
}

// NewRecommender creates a recommender. A non-positive threshold falls back
// to DefaultDetailThreshold.
func NewRecommender(detailThreshold int) *Recommender {
	if detailThreshold <= 0 {
		detailThreshold = DefaultDetailThreshold
	}
	return &Recommender{detailThreshold: detailThreshold}
}

// Recommend picks a strategy from sibling counts per level and the level
// under inspection. Rules are evaluated in precedence order; the threshold
// boundary is inclusive (exactly threshold detail siblings still recommends
// detail classification).
func (r *Recommender) Recommend(siblingsByLevel map[hierarchy.Level]int, current hierarchy.Level) Strategy {
	detailCount := siblingsByLevel[hierarchy.LevelDetail]

	switch {
	case current == hierarchy.LevelDetail && detailCount > 0 && detailCount <= r.detailThreshold:
		return StrategyDetail
	case current == hierarchy.LevelSubcategory || detailCount > r.detailThreshold:
		return StrategySummary
	case current <= hierarchy.LevelFamilyRoot:
		return StrategyHighLevel
	default:
		return StrategySummary
	}
}
