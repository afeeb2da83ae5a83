package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/common"
	"github.com/dssolutions-mx/financial-dashboard-sub003/internal/model"
)

const ruleColumns = `id, account_code, account_name, account_type, category,
	sub_category, final_classification, hierarchy_level, family_code,
	effective_from, effective_to, created_by, approved_by, created_at, updated_at, is_active`

// CreateRule inserts a new classification rule, assigning an id when the
// caller left it empty.
func (s *SQLiteStorage) CreateRule(ctx context.Context, rule *model.ClassificationRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRule(rule); err != nil {
		return err
	}

	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	if rule.EffectiveFrom.IsZero() {
		rule.EffectiveFrom = time.Now().UTC()
	}
	rule.IsActive = true

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO classification_rules (
			id, account_code, account_name, account_type, category,
			sub_category, final_classification, hierarchy_level, family_code,
			effective_from, effective_to, created_by, approved_by, is_active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
	`,
		rule.ID,
		rule.AccountCode,
		rule.AccountName,
		rule.Classification.Type,
		rule.Classification.Category,
		rule.Classification.SubCategory,
		rule.Classification.Final,
		rule.Level,
		rule.FamilyCode,
		rule.EffectiveFrom,
		rule.EffectiveTo,
		rule.CreatedBy,
		rule.ApprovedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert rule: %w", err)
	}

	return nil
}

// GetRule returns a rule by id.
func (s *SQLiteStorage) GetRule(ctx context.Context, id string) (*model.ClassificationRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM classification_rules WHERE id = ?`, ruleColumns)
	row := s.db.QueryRowContext(ctx, query, id)

	rule, err := scanRule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: rule %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	return rule, nil
}

// GetActiveRules returns all active rules ordered by account code.
func (s *SQLiteStorage) GetActiveRules(ctx context.Context) ([]model.ClassificationRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM classification_rules
		WHERE is_active = 1
		ORDER BY account_code
	`, ruleColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.ClassificationRule
	for rows.Next() {
		rule, scanErr := scanRule(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		rules = append(rules, *rule)
	}

	return rules, rows.Err()
}

// UpdateRule rewrites a rule's mutable fields.
func (s *SQLiteStorage) UpdateRule(ctx context.Context, rule *model.ClassificationRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRule(rule); err != nil {
		return err
	}
	if err := validateString(rule.ID, "rule.ID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE classification_rules
		SET account_name = ?, account_type = ?, category = ?, sub_category = ?,
			final_classification = ?, effective_to = ?, approved_by = ?,
			updated_at = ?
		WHERE id = ?
	`,
		rule.AccountName,
		rule.Classification.Type,
		rule.Classification.Category,
		rule.Classification.SubCategory,
		rule.Classification.Final,
		rule.EffectiveTo,
		rule.ApprovedBy,
		rule.UpdatedAt,
		rule.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: rule %s", common.ErrNotFound, rule.ID)
	}

	return nil
}

// DeactivateRule soft-deletes a rule. Rules are never hard-deleted.
func (s *SQLiteStorage) DeactivateRule(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE classification_rules
		SET is_active = 0, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate rule: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: rule %s", common.ErrNotFound, id)
	}

	return nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRule(s scanner) (*model.ClassificationRule, error) {
	var (
		rule        model.ClassificationRule
		effectiveTo sql.NullTime
		updatedAt   sql.NullTime
	)

	err := s.Scan(
		&rule.ID,
		&rule.AccountCode,
		&rule.AccountName,
		&rule.Classification.Type,
		&rule.Classification.Category,
		&rule.Classification.SubCategory,
		&rule.Classification.Final,
		&rule.Level,
		&rule.FamilyCode,
		&rule.EffectiveFrom,
		&effectiveTo,
		&rule.CreatedBy,
		&rule.ApprovedBy,
		&rule.CreatedAt,
		&updatedAt,
		&rule.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan rule: %w", err)
	}

	if effectiveTo.Valid {
		rule.EffectiveTo = &effectiveTo.Time
	}
	if updatedAt.Valid {
		rule.UpdatedAt = updatedAt.Time
	}

	return &rule, nil
}
