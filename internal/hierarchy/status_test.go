package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/model"
)

func classified() model.Classification {
	return model.Classification{
		Type:        "Expense",
		Category:    "Materials",
		SubCategory: "Cement",
		Final:       "Direct Cost",
	}
}

func TestEvaluator_Status(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Classification)
		want   model.ClassificationStatus
	}{
		{
			name:   "fully classified",
			mutate: func(*model.Classification) {},
			want:   model.StatusClassified,
		},
		{
			name:   "empty type",
			mutate: func(c *model.Classification) { c.Type = "" },
			want:   model.StatusUnclassified,
		},
		{
			name:   "type sentinel",
			mutate: func(c *model.Classification) { c.Type = "Undefined" },
			want:   model.StatusUnclassified,
		},
		{
			name:   "category sentinel",
			mutate: func(c *model.Classification) { c.Category = "No Category" },
			want:   model.StatusUnclassified,
		},
		{
			name:   "empty sub-category",
			mutate: func(c *model.Classification) { c.SubCategory = "" },
			want:   model.StatusUnclassified,
		},
		{
			name:   "final sentinel",
			mutate: func(c *model.Classification) { c.Final = "No Classification" },
			want:   model.StatusUnclassified,
		},
		{
			name:   "empty final",
			mutate: func(c *model.Classification) { c.Final = "" },
			want:   model.StatusUnclassified,
		},
	}

	evaluator := NewEvaluator(DefaultSentinels())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := classified()
			tt.mutate(&c)
			got := evaluator.Status(model.LedgerRow{Classification: c})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluator_CustomSentinels(t *testing.T) {
	evaluator := NewEvaluator(Sentinels{Type: "N/A", Category: "none", Final: "pending"})

	c := classified()
	c.Type = "N/A"
	assert.Equal(t, model.StatusUnclassified, evaluator.Status(model.LedgerRow{Classification: c}))

	// The default sentinel is a regular value under custom configuration.
	c.Type = "Undefined"
	assert.Equal(t, model.StatusClassified, evaluator.Status(model.LedgerRow{Classification: c}))
}

func TestNewEvaluator_EmptySentinelsFallBack(t *testing.T) {
	evaluator := NewEvaluator(Sentinels{})

	c := classified()
	c.Category = "No Category"
	assert.Equal(t, model.StatusUnclassified, evaluator.Status(model.LedgerRow{Classification: c}))
}
