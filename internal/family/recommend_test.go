package family

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/hierarchy"
)

func TestRecommender_Recommend(t *testing.T) {
	tests := []struct {
		name        string
		detailCount int
		current     hierarchy.Level
		want        Strategy
	}{
		{
			name:        "small detail set classifies individually",
			detailCount: 5,
			current:     hierarchy.LevelDetail,
			want:        StrategyDetail,
		},
		{
			name:        "threshold boundary is inclusive",
			detailCount: 15,
			current:     hierarchy.LevelDetail,
			want:        StrategyDetail,
		},
		{
			name:        "one past the threshold switches to summary",
			detailCount: 16,
			current:     hierarchy.LevelDetail,
			want:        StrategySummary,
		},
		{
			name:        "detail level with no detail siblings falls back to summary",
			detailCount: 0,
			current:     hierarchy.LevelDetail,
			want:        StrategySummary,
		},
		{
			name:        "family root gets high-level",
			detailCount: 3,
			current:     hierarchy.LevelFamilyRoot,
			want:        StrategyHighLevel,
		},
		{
			name:        "grand total gets high-level",
			detailCount: 0,
			current:     hierarchy.LevelGrandTotal,
			want:        StrategyHighLevel,
		},
		{
			name:        "family root with too many leaves still summarizes",
			detailCount: 40,
			current:     hierarchy.LevelFamilyRoot,
			want:        StrategySummary,
		},
	}

	rec := NewRecommender(DefaultDetailThreshold)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			byLevel := map[hierarchy.Level]int{hierarchy.LevelDetail: tt.detailCount}
			assert.Equal(t, tt.want, rec.Recommend(byLevel, tt.current))
		})
	}
}

func TestRecommender_SubcategoryAlwaysSummary(t *testing.T) {
	rec := NewRecommender(DefaultDetailThreshold)

	for _, detailCount := range []int{0, 1, 15, 16, 100} {
		t.Run(fmt.Sprintf("detail_count_%d", detailCount), func(t *testing.T) {
			byLevel := map[hierarchy.Level]int{hierarchy.LevelDetail: detailCount}
			assert.Equal(t, StrategySummary, rec.Recommend(byLevel, hierarchy.LevelSubcategory))
		})
	}
}

func TestRecommender_ConfigurableThreshold(t *testing.T) {
	rec := NewRecommender(3)

	byLevel := map[hierarchy.Level]int{hierarchy.LevelDetail: 3}
	assert.Equal(t, StrategyDetail, rec.Recommend(byLevel, hierarchy.LevelDetail))

	byLevel[hierarchy.LevelDetail] = 4
	assert.Equal(t, StrategySummary, rec.Recommend(byLevel, hierarchy.LevelDetail))
}

func TestNewRecommender_DefaultsThreshold(t *testing.T) {
	rec := NewRecommender(0)
	assert.Equal(t, DefaultDetailThreshold, rec.detailThreshold)
}
