package engine_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/engine"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/model"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/service"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/testutil"
)

func TestEngine_ApplyRule_AgainstSQLite(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	eng := engine.New(store, store)

	january := testutil.SeedReport(t, store, "january", []model.LedgerRow{
		{AccountCode: "5000-1000-001-001", Label: "Cement CPC 40",
			Amount: decimal.RequireFromString("-120.25")},
		{AccountCode: "5000-1000-001-002", Label: "Cement CPC 30",
			Amount: decimal.RequireFromString("40")},
	})
	february := testutil.SeedReport(t, store, "february", []model.LedgerRow{
		{AccountCode: "5000-1000-001-001", Label: "Cement CPC 40",
			Amount: decimal.RequireFromString("79.75")},
	})

	rule := &model.ClassificationRule{
		AccountCode: "5000-1000-001-001",
		AccountName: "Cement CPC 40",
		CreatedBy:   "controller@plant3",
		Classification: model.Classification{
			Type:        "Expense",
			Category:    "Materials",
			SubCategory: "Cement",
			Final:       "Direct Cost",
		},
	}
	require.NoError(t, eng.CreateRule(ctx, rule))

	final := "Indirect Cost"
	impact, err := eng.ApplyRule(ctx, service.RuleUpdateRequest{
		RuleID:             rule.ID,
		UserID:             "controller@plant3",
		Updates:            model.ClassificationUpdate{Final: &final},
		ApplyRetroactively: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, impact.AffectedRecords())
	assert.ElementsMatch(t, []string{january.ID, february.ID}, impact.AffectedReports)
	assert.Empty(t, impact.Skipped)
	assert.True(t, impact.TotalImpact.Equal(decimal.RequireFromString("200")),
		"magnitudes are summed, signs ignored")

	// Omitted update fields keep the rule's current values.
	for _, change := range impact.Changes {
		assert.Equal(t, "Materials", change.New.Category)
		assert.Equal(t, "Indirect Cost", change.New.Final)
	}

	// The sibling with a different detail code is untouched.
	rows, err := store.GetRowsByReport(ctx, january.ID)
	require.NoError(t, err)
	for _, row := range rows {
		if row.AccountCode == "5000-1000-001-001" {
			assert.Equal(t, "Indirect Cost", row.Classification.Final)
		} else {
			assert.Empty(t, row.Classification.Final)
		}
	}
}
