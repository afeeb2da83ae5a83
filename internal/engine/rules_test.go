package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/common"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/model"
)

func TestCreateRule_DerivesHierarchyFields(t *testing.T) {
	rules := newFakeRuleStore()
	eng := New(rules, &fakeLedgerStore{})

	rule := &model.ClassificationRule{
		ID:          "rule-new",
		AccountCode: "5000-2000-003-000",
		AccountName: "Freight",
		CreatedBy:   "ana",
	}
	require.NoError(t, eng.CreateRule(context.Background(), rule))

	assert.Equal(t, 3, rule.Level)
	assert.Equal(t, "5000-2000", rule.FamilyCode)
	assert.False(t, rule.CreatedAt.IsZero())
}

func TestCreateRule_Validation(t *testing.T) {
	eng := New(newFakeRuleStore(), &fakeLedgerStore{})

	err := eng.CreateRule(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrValidation)

	err = eng.CreateRule(context.Background(), &model.ClassificationRule{AccountName: "x", CreatedBy: "ana"})
	assert.ErrorIs(t, err, common.ErrValidation)

	err = eng.CreateRule(context.Background(), &model.ClassificationRule{AccountCode: "5000-1000-000-000", AccountName: "x"})
	assert.ErrorIs(t, err, common.ErrValidation)

	err = eng.CreateRule(context.Background(), &model.ClassificationRule{
		AccountCode: "bogus", AccountName: "x", CreatedBy: "ana",
	})
	assert.ErrorIs(t, err, common.ErrMalformedCode)
}

func TestListRules_Projection(t *testing.T) {
	rule := testRule()
	inactive := testRule()
	inactive.ID = "rule-2"
	inactive.IsActive = false

	rules := newFakeRuleStore(rule, inactive)
	eng := New(rules, &fakeLedgerStore{})

	listings, err := eng.ListRules(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 1, "inactive rules are excluded")

	listing := listings[0]
	assert.Equal(t, rule.ID, listing.ID)
	assert.Equal(t, rule.AccountCode, listing.AccountCode)
	assert.Equal(t, rule.Classification, listing.Classification)
	assert.Equal(t, 0, listing.UsageCount, "usage count is a placeholder")
	// Never updated: last-modified falls back to creation time.
	assert.Equal(t, rule.CreatedAt, listing.LastModified)
}

func TestDeactivateRule(t *testing.T) {
	rules := newFakeRuleStore(testRule())
	eng := New(rules, &fakeLedgerStore{})

	require.NoError(t, eng.DeactivateRule(context.Background(), "rule-1"))

	listings, err := eng.ListRules(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listings)

	err = eng.DeactivateRule(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrValidation)
}
