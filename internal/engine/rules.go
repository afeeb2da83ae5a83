package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/common"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/hierarchy"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/model"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/service"
)

// CreateRule derives the hierarchy level and family code from the rule's
// account code and persists it.
func (e *Engine) CreateRule(ctx context.Context, rule *model.ClassificationRule) error {
	if rule == nil {
		return fmt.Errorf("%w: missing rule", common.ErrValidation)
	}
	if strings.TrimSpace(rule.AccountCode) == "" {
		return fmt.Errorf("%w: missing account code", common.ErrValidation)
	}
	if strings.TrimSpace(rule.CreatedBy) == "" {
		return fmt.Errorf("%w: missing created-by user", common.ErrValidation)
	}

	code, err := hierarchy.ParseCode(rule.AccountCode)
	if err != nil {
		return err
	}
	rule.Level = int(code.Level())
	rule.FamilyCode = code.FamilyKey()
	rule.CreatedAt = e.now()

	if err := e.rules.CreateRule(ctx, rule); err != nil {
		return fmt.Errorf("%w: creating rule for %s: %v", common.ErrStoreUnavailable, rule.AccountCode, err)
	}
	return nil
}

// ListRules returns active rules as listing projections, ordered by account
// code. UsageCount is a placeholder zero: computing real usage is out of
// scope for this call.
func (e *Engine) ListRules(ctx context.Context) ([]service.RuleListing, error) {
	rules, err := e.rules.GetActiveRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing rules: %v", common.ErrStoreUnavailable, err)
	}

	listings := make([]service.RuleListing, 0, len(rules))
	for i := range rules {
		rule := &rules[i]
		listings = append(listings, service.RuleListing{
			ID:             rule.ID,
			AccountCode:    rule.AccountCode,
			AccountName:    rule.AccountName,
			Classification: rule.Classification,
			Level:          rule.Level,
			UsageCount:     0,
			LastModified:   rule.LastModified(),
		})
	}

	return listings, nil
}

// DeactivateRule soft-deactivates a rule.
func (e *Engine) DeactivateRule(ctx context.Context, ruleID string) error {
	if strings.TrimSpace(ruleID) == "" {
		return fmt.Errorf("%w: missing rule id", common.ErrValidation)
	}
	if err := e.rules.DeactivateRule(ctx, ruleID); err != nil {
		return fmt.Errorf("deactivating rule %s: %w", ruleID, err)
	}
	return nil
}
