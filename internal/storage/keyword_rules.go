package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/autocat/internal/common"
	"github.com/Veraticus/autocat/internal/model"
)

const keywordColumns = `id, keyword, category, label, language, is_active, created_at, updated_at`

// CreateKeywordRule creates a new keyword rule. (keyword, category) must be unique.
func (s *SQLiteStorage) CreateKeywordRule(ctx context.Context, rule *model.KeywordRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := PrepareKeywordRule(rule, s.order); err != nil {
		return err
	}

	ts := now()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO keyword_rules (keyword, category, label, language, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rule.Keyword, rule.Category, rule.Label, string(rule.Language), rule.IsActive, ts, ts)
	if err != nil {
		return fmt.Errorf("failed to create keyword rule %q: %w", rule.Keyword, translateError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get keyword rule ID: %w", err)
	}

	rule.ID = id
	rule.CreatedAt = ts
	rule.UpdatedAt = ts
	return nil
}

// GetKeywordRule retrieves a keyword rule by ID.
func (s *SQLiteStorage) GetKeywordRule(ctx context.Context, id int64) (*model.KeywordRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rule, err := scanKeywordRule(s.db.QueryRowContext(ctx,
		`SELECT `+keywordColumns+` FROM keyword_rules WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("keyword rule %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get keyword rule: %w", err)
	}
	return rule, nil
}

// UpdateKeywordRule replaces a keyword rule's fields.
func (s *SQLiteStorage) UpdateKeywordRule(ctx context.Context, rule *model.KeywordRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := PrepareKeywordRule(rule, s.order); err != nil {
		return err
	}

	ts := now()
	result, err := s.db.ExecContext(ctx, `
		UPDATE keyword_rules SET
			keyword = ?, category = ?, label = ?, language = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`, rule.Keyword, rule.Category, rule.Label, string(rule.Language), rule.IsActive, ts, rule.ID)
	if err != nil {
		return fmt.Errorf("failed to update keyword rule: %w", translateError(err))
	}
	if err := requireAffected(result, "keyword rule", rule.ID); err != nil {
		return err
	}
	rule.UpdatedAt = ts
	return nil
}

// SetKeywordRuleActive activates or deactivates a keyword rule.
func (s *SQLiteStorage) SetKeywordRuleActive(ctx context.Context, id int64, active bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE keyword_rules SET is_active = ?, updated_at = ? WHERE id = ?
	`, active, now(), id)
	if err != nil {
		return fmt.Errorf("failed to update keyword rule: %w", translateError(err))
	}
	return requireAffected(result, "keyword rule", id)
}

// ListKeywordRules returns keyword rules in storage (ID) order.
func (s *SQLiteStorage) ListKeywordRules(ctx context.Context, includeInactive bool) ([]model.KeywordRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+keywordColumns+`
		FROM keyword_rules
		WHERE ? OR is_active = 1
		ORDER BY id
	`, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to query keyword rules: %w", translateError(err))
	}
	defer func() { _ = rows.Close() }()

	var rules []model.KeywordRule
	for rows.Next() {
		rule, err := scanKeywordRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan keyword rule: %w", err)
		}
		rules = append(rules, *rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating keyword rules: %w", err)
	}
	return rules, nil
}

// GetActiveKeywordRules returns the keyword rules visible to the classifier.
func (s *SQLiteStorage) GetActiveKeywordRules(ctx context.Context) ([]model.KeywordRule, error) {
	return s.ListKeywordRules(ctx, false)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanKeywordRule(row rowScanner) (*model.KeywordRule, error) {
	var rule model.KeywordRule
	var language string
	if err := row.Scan(&rule.ID, &rule.Keyword, &rule.Category, &rule.Label, &language,
		&rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
		return nil, err
	}
	rule.Language = model.Language(language)
	return &rule, nil
}
