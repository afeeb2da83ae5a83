package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestClassificationUpdate_ApplyTo(t *testing.T) {
	existing := Classification{
		Type:        "Expense",
		Category:    "Materials",
		SubCategory: "Cement",
		Final:       "Direct Cost",
	}

	tests := []struct {
		name   string
		update ClassificationUpdate
		want   Classification
	}{
		{
			name:   "empty update keeps everything",
			update: ClassificationUpdate{},
			want:   existing,
		},
		{
			name:   "single field update",
			update: ClassificationUpdate{Category: strPtr("Raw Materials")},
			want: Classification{
				Type:        "Expense",
				Category:    "Raw Materials",
				SubCategory: "Cement",
				Final:       "Direct Cost",
			},
		},
		{
			name: "full replacement",
			update: ClassificationUpdate{
				Type:        strPtr("Income"),
				Category:    strPtr("Sales"),
				SubCategory: strPtr("Concrete"),
				Final:       strPtr("Revenue"),
			},
			want: Classification{
				Type:        "Income",
				Category:    "Sales",
				SubCategory: "Concrete",
				Final:       "Revenue",
			},
		},
		{
			name:   "explicit empty string clears, nil keeps",
			update: ClassificationUpdate{SubCategory: strPtr("")},
			want: Classification{
				Type:        "Expense",
				Category:    "Materials",
				SubCategory: "",
				Final:       "Direct Cost",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.update.ApplyTo(existing))
		})
	}
}

func TestClassificationUpdate_IsZero(t *testing.T) {
	assert.True(t, ClassificationUpdate{}.IsZero())
	assert.False(t, ClassificationUpdate{Type: strPtr("Expense")}.IsZero())
	assert.False(t, ClassificationUpdate{Final: strPtr("")}.IsZero())
}
