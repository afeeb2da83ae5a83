package family

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/common"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/hierarchy"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/model"
)

type fakeRowSource struct {
	rows []model.LedgerRow
	err  error
}

func (f *fakeRowSource) GetRowsByFamilyKey(_ context.Context, _, _ string) ([]model.LedgerRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func row(code, label, amount string, classified bool) model.LedgerRow {
	c := model.Classification{
		Type:        "Expense",
		Category:    "Materials",
		SubCategory: "Cement",
		Final:       "Direct Cost",
	}
	if !classified {
		c = model.Classification{
			Type:        "Undefined",
			Category:    "No Category",
			SubCategory: "",
			Final:       "No Classification",
		}
	}
	return model.LedgerRow{
		ID:             code,
		ReportID:       "rep-1",
		AccountCode:    code,
		Label:          label,
		Amount:         decimal.RequireFromString(amount),
		Classification: c,
	}
}

func newTestGrouper(source RowSource) *Grouper {
	return NewGrouper(source, Config{
		Sentinels:       hierarchy.DefaultSentinels(),
		DetailThreshold: DefaultDetailThreshold,
	})
}

func TestGrouper_Context(t *testing.T) {
	source := &fakeRowSource{rows: []model.LedgerRow{
		row("5000-1000-000-000", "Materials", "0", false),
		row("5000-1000-001-000", "Cement", "0", false),
		row("5000-1000-001-001", "Cement CPC 40", "1500.50", true),
		row("5000-1000-001-002", "Cement CPC 30", "-200", false),
		row("5000-1000-001-003", "Additives", "99.50", false),
	}}
	grouper := newTestGrouper(source)

	fc, err := grouper.Context(context.Background(), "5000-1000-001-001", "rep-1")
	require.NoError(t, err)

	assert.Equal(t, "5000-1000", fc.FamilyKey)
	assert.Equal(t, "Materials", fc.FamilyName)
	assert.Equal(t, hierarchy.LevelDetail, fc.Level)
	assert.Len(t, fc.Siblings, 3)
	assert.Equal(t, 1, fc.ClassifiedCount)
	assert.Equal(t, 2, fc.UnclassifiedCount)
	assert.InDelta(t, 33.33, fc.Completeness, 0.01)
	assert.True(t, fc.HasMixedSiblings)
	// Negative amounts are not normalized; the sum is signed.
	assert.True(t, fc.UnclassifiedAmount.Equal(decimal.RequireFromString("-100.50")),
		"got %s", fc.UnclassifiedAmount)
	assert.Equal(t, StrategyDetail, fc.Recommended)
}

func TestGrouper_Context_MissingInputs(t *testing.T) {
	grouper := newTestGrouper(&fakeRowSource{})

	_, err := grouper.Context(context.Background(), "", "rep-1")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = grouper.Context(context.Background(), "5000-1000-001-001", "")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestGrouper_Context_MalformedTargetCode(t *testing.T) {
	grouper := newTestGrouper(&fakeRowSource{})

	_, err := grouper.Context(context.Background(), "not-a-code", "rep-1")
	assert.ErrorIs(t, err, common.ErrMalformedCode)
}

func TestGrouper_Context_StoreFailure(t *testing.T) {
	grouper := newTestGrouper(&fakeRowSource{err: errors.New("disk on fire")})

	_, err := grouper.Context(context.Background(), "5000-1000-001-001", "rep-1")
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestGrouper_Context_NoSiblings(t *testing.T) {
	// Only the family root exists; no siblings at the detail level.
	source := &fakeRowSource{rows: []model.LedgerRow{
		row("5000-1000-000-000", "Materials", "0", false),
	}}
	grouper := newTestGrouper(source)

	fc, err := grouper.Context(context.Background(), "5000-1000-001-001", "rep-1")
	require.NoError(t, err)

	assert.Empty(t, fc.Siblings)
	assert.Zero(t, fc.Completeness)
	assert.False(t, fc.HasMixedSiblings)
	assert.True(t, fc.UnclassifiedAmount.IsZero())
}

func TestGrouper_Context_SkipsMalformedRows(t *testing.T) {
	source := &fakeRowSource{rows: []model.LedgerRow{
		row("5000-1000-001-001", "Cement CPC 40", "10", true),
		{ID: "bad", ReportID: "rep-1", AccountCode: "garbage", Label: "Broken"},
		row("5000-1000-001-002", "Cement CPC 30", "20", true),
	}}
	grouper := newTestGrouper(source)

	fc, err := grouper.Context(context.Background(), "5000-1000-001-001", "rep-1")
	require.NoError(t, err)

	assert.Len(t, fc.Siblings, 2)
	assert.Equal(t, 2, fc.ClassifiedCount)
	assert.Equal(t, float64(100), fc.Completeness)
	assert.False(t, fc.HasMixedSiblings)
}

func TestGrouper_Context_FamilyNameFallbacks(t *testing.T) {
	t.Run("falls back to first sibling label without a family root", func(t *testing.T) {
		source := &fakeRowSource{rows: []model.LedgerRow{
			row("5000-1000-001-001", "Cement CPC 40", "10", true),
		}}
		fc, err := newTestGrouper(source).Context(context.Background(), "5000-1000-001-001", "rep-1")
		require.NoError(t, err)
		assert.Equal(t, "Cement CPC 40", fc.FamilyName)
	})

	t.Run("unknown family when nothing has a label", func(t *testing.T) {
		source := &fakeRowSource{rows: []model.LedgerRow{
			{ID: "r1", ReportID: "rep-1", AccountCode: "5000-1000-001-001"},
		}}
		fc, err := newTestGrouper(source).Context(context.Background(), "5000-1000-001-001", "rep-1")
		require.NoError(t, err)
		assert.Equal(t, UnknownFamilyName, fc.FamilyName)
	})

	t.Run("family root label wins even when fetched later", func(t *testing.T) {
		source := &fakeRowSource{rows: []model.LedgerRow{
			row("5000-1000-001-001", "Cement CPC 40", "10", true),
			row("5000-1000-000-000", "Materials", "0", false),
		}}
		fc, err := newTestGrouper(source).Context(context.Background(), "5000-1000-001-001", "rep-1")
		require.NoError(t, err)
		assert.Equal(t, "Materials", fc.FamilyName)
	})
}

func TestGrouper_Context_CompletenessBounds(t *testing.T) {
	source := &fakeRowSource{rows: []model.LedgerRow{
		row("5000-1000-001-001", "A", "1", true),
		row("5000-1000-001-002", "B", "1", true),
		row("5000-1000-001-003", "C", "1", false),
	}}
	fc, err := newTestGrouper(source).Context(context.Background(), "5000-1000-001-001", "rep-1")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, fc.Completeness, 0.0)
	assert.LessOrEqual(t, fc.Completeness, 100.0)
	assert.True(t, fc.HasMixedSiblings)
}
