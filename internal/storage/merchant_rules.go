package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/autocat/internal/common"
	"github.com/Veraticus/autocat/internal/model"
)

// CreateMerchantRule creates a new merchant rule with its alternate patterns.
func (s *SQLiteStorage) CreateMerchantRule(ctx context.Context, rule *model.MerchantRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := PrepareMerchantRule(rule); err != nil {
		return err
	}

	ts := now()
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO merchant_rules (pattern, category, label, is_active, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, rule.Pattern, rule.Category, rule.Label, rule.IsActive, ts, ts)
		if err != nil {
			return fmt.Errorf("failed to create merchant rule %q: %w", rule.Pattern, translateError(err))
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get merchant rule ID: %w", err)
		}

		if err := insertAliases(ctx, tx, id, rule.AlternatePatterns); err != nil {
			return err
		}

		rule.ID = id
		rule.CreatedAt = ts
		rule.UpdatedAt = ts
		return nil
	})
}

func insertAliases(ctx context.Context, tx *sql.Tx, merchantID int64, aliases []string) error {
	for i, alias := range aliases {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO merchant_aliases (merchant_id, alias, position) VALUES (?, ?, ?)
		`, merchantID, alias, i); err != nil {
			return fmt.Errorf("failed to save alternate pattern %q: %w", alias, translateError(err))
		}
	}
	return nil
}

// GetMerchantRule retrieves a merchant rule by ID, active or not.
func (s *SQLiteStorage) GetMerchantRule(ctx context.Context, id int64) (*model.MerchantRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var rule model.MerchantRule
	err := s.db.QueryRowContext(ctx, `
		SELECT id, pattern, category, label, is_active, created_at, updated_at
		FROM merchant_rules
		WHERE id = ?
	`, id).Scan(&rule.ID, &rule.Pattern, &rule.Category, &rule.Label, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("merchant rule %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get merchant rule: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT alias FROM merchant_aliases WHERE merchant_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get alternate patterns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var alias string
		if err := rows.Scan(&alias); err != nil {
			return nil, fmt.Errorf("failed to scan alternate pattern: %w", err)
		}
		rule.AlternatePatterns = append(rule.AlternatePatterns, alias)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alternate patterns: %w", err)
	}

	return &rule, nil
}

// UpdateMerchantRule replaces a rule's fields and alternate patterns.
func (s *SQLiteStorage) UpdateMerchantRule(ctx context.Context, rule *model.MerchantRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := PrepareMerchantRule(rule); err != nil {
		return err
	}

	ts := now()
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE merchant_rules SET
				pattern = ?, category = ?, label = ?, is_active = ?, updated_at = ?
			WHERE id = ?
		`, rule.Pattern, rule.Category, rule.Label, rule.IsActive, ts, rule.ID)
		if err != nil {
			return fmt.Errorf("failed to update merchant rule: %w", translateError(err))
		}
		if err := requireAffected(result, "merchant rule", rule.ID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM merchant_aliases WHERE merchant_id = ?`, rule.ID); err != nil {
			return fmt.Errorf("failed to clear alternate patterns: %w", err)
		}
		if err := insertAliases(ctx, tx, rule.ID, rule.AlternatePatterns); err != nil {
			return err
		}

		rule.UpdatedAt = ts
		return nil
	})
}

// SetMerchantRuleActive activates or deactivates a rule. Deactivated rules are retained.
func (s *SQLiteStorage) SetMerchantRuleActive(ctx context.Context, id int64, active bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE merchant_rules SET is_active = ?, updated_at = ? WHERE id = ?
	`, active, now(), id)
	if err != nil {
		return fmt.Errorf("failed to update merchant rule: %w", translateError(err))
	}
	return requireAffected(result, "merchant rule", id)
}

// ListMerchantRules returns merchant rules ordered by ID.
func (s *SQLiteStorage) ListMerchantRules(ctx context.Context, includeInactive bool) ([]model.MerchantRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listMerchantRules(ctx, s.db, includeInactive)
}

// GetActiveMerchantRules returns the rules visible to the classifier.
func (s *SQLiteStorage) GetActiveMerchantRules(ctx context.Context) ([]model.MerchantRule, error) {
	return s.ListMerchantRules(ctx, false)
}

func (s *SQLiteStorage) listMerchantRules(ctx context.Context, q queryable, includeInactive bool) ([]model.MerchantRule, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, pattern, category, label, is_active, created_at, updated_at
		FROM merchant_rules
		WHERE ? OR is_active = 1
		ORDER BY id
	`, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to query merchant rules: %w", translateError(err))
	}
	defer func() { _ = rows.Close() }()

	var rules []model.MerchantRule
	index := make(map[int64]int)
	for rows.Next() {
		var rule model.MerchantRule
		if err := rows.Scan(&rule.ID, &rule.Pattern, &rule.Category, &rule.Label, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan merchant rule: %w", err)
		}
		index[rule.ID] = len(rules)
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating merchant rules: %w", err)
	}
	if len(rules) == 0 {
		return rules, nil
	}

	aliasRows, err := q.QueryContext(ctx, `
		SELECT a.merchant_id, a.alias
		FROM merchant_aliases a
		JOIN merchant_rules m ON m.id = a.merchant_id
		WHERE ? OR m.is_active = 1
		ORDER BY a.merchant_id, a.position
	`, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to query alternate patterns: %w", translateError(err))
	}
	defer func() { _ = aliasRows.Close() }()

	for aliasRows.Next() {
		var merchantID int64
		var alias string
		if err := aliasRows.Scan(&merchantID, &alias); err != nil {
			return nil, fmt.Errorf("failed to scan alternate pattern: %w", err)
		}
		if i, ok := index[merchantID]; ok {
			rules[i].AlternatePatterns = append(rules[i].AlternatePatterns, alias)
		}
	}
	if err := aliasRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alternate patterns: %w", err)
	}

	return rules, nil
}

func requireAffected(result sql.Result, what string, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s %d: %w", what, id, common.ErrNotFound)
	}
	return nil
}
