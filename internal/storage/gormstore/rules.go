package gormstore

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/autocat/internal/model"
	"github.com/Veraticus/autocat/internal/storage"
	"gorm.io/gorm"
)

// CreateMerchantRule stores a merchant rule and its alternate patterns.
func (s *Store) CreateMerchantRule(ctx context.Context, rule *model.MerchantRule) error {
	if err := storage.PrepareMerchantRule(rule); err != nil {
		return err
	}

	row := merchantRuleRow{
		Pattern:  rule.Pattern,
		Category: rule.Category,
		Label:    rule.Label,
		IsActive: rule.IsActive,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("create merchant rule %q: %w", rule.Pattern, translateError(err))
		}
		return saveAliases(tx, row.ID, rule.AlternatePatterns)
	})
	if err != nil {
		return err
	}

	rule.ID = row.ID
	rule.CreatedAt = row.CreatedAt
	rule.UpdatedAt = row.UpdatedAt
	return nil
}

func saveAliases(tx *gorm.DB, merchantID int64, aliases []string) error {
	if len(aliases) == 0 {
		return nil
	}
	rows := make([]merchantAliasRow, 0, len(aliases))
	for i, alias := range aliases {
		rows = append(rows, merchantAliasRow{MerchantID: merchantID, Alias: alias, Position: i})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("save alternate patterns: %w", translateError(err))
	}
	return nil
}

// GetMerchantRule returns a merchant rule by ID, active or not.
func (s *Store) GetMerchantRule(ctx context.Context, id int64) (*model.MerchantRule, error) {
	var row merchantRuleRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, fmt.Errorf("merchant rule %d: %w", id, translateError(err))
	}
	aliases, err := s.aliasesFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	rule := row.toModel(aliases[id])
	return &rule, nil
}

// UpdateMerchantRule rewrites a rule and replaces its alternate patterns.
func (s *Store) UpdateMerchantRule(ctx context.Context, rule *model.MerchantRule) error {
	if err := storage.PrepareMerchantRule(rule); err != nil {
		return err
	}

	ts := time.Now().UTC()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&merchantRuleRow{}).Where("id = ?", rule.ID).Updates(map[string]any{
			"pattern":    rule.Pattern,
			"category":   rule.Category,
			"label":      rule.Label,
			"is_active":  rule.IsActive,
			"updated_at": ts,
		})
		if err := requireRowsAffected(res, "merchant rule", rule.ID); err != nil {
			return err
		}
		if err := tx.Where("merchant_id = ?", rule.ID).Delete(&merchantAliasRow{}).Error; err != nil {
			return fmt.Errorf("clear alternate patterns: %w", err)
		}
		if err := saveAliases(tx, rule.ID, rule.AlternatePatterns); err != nil {
			return err
		}
		rule.UpdatedAt = ts
		return nil
	})
}

// SetMerchantRuleActive activates or deactivates a merchant rule.
func (s *Store) SetMerchantRuleActive(ctx context.Context, id int64, active bool) error {
	res := s.db.WithContext(ctx).Model(&merchantRuleRow{}).Where("id = ?", id).Updates(map[string]any{
		"is_active":  active,
		"updated_at": time.Now().UTC(),
	})
	return requireRowsAffected(res, "merchant rule", id)
}

// ListMerchantRules returns merchant rules ordered by ID.
func (s *Store) ListMerchantRules(ctx context.Context, includeInactive bool) ([]model.MerchantRule, error) {
	return s.listMerchantRules(ctx, !includeInactive)
}

// GetActiveMerchantRules returns the rules visible to the classifier.
func (s *Store) GetActiveMerchantRules(ctx context.Context) ([]model.MerchantRule, error) {
	return s.listMerchantRules(ctx, true)
}

func (s *Store) listMerchantRules(ctx context.Context, activeOnly bool) ([]model.MerchantRule, error) {
	q := s.db.WithContext(ctx).Order("id")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var rows []merchantRuleRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list merchant rules: %w", err)
	}
	if len(rows) == 0 {
		return []model.MerchantRule{}, nil
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	aliases, err := s.aliasesFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	rules := make([]model.MerchantRule, len(rows))
	for i, row := range rows {
		rules[i] = row.toModel(aliases[row.ID])
	}
	return rules, nil
}

func (s *Store) aliasesFor(ctx context.Context, ids []int64) (map[int64][]string, error) {
	var rows []merchantAliasRow
	if err := s.db.WithContext(ctx).
		Where("merchant_id IN ?", ids).
		Order("merchant_id, position").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load alternate patterns: %w", err)
	}
	byMerchant := make(map[int64][]string, len(ids))
	for _, row := range rows {
		byMerchant[row.MerchantID] = append(byMerchant[row.MerchantID], row.Alias)
	}
	return byMerchant, nil
}

// CreateKeywordRule stores a keyword rule.
func (s *Store) CreateKeywordRule(ctx context.Context, rule *model.KeywordRule) error {
	if err := storage.PrepareKeywordRule(rule, s.order); err != nil {
		return err
	}

	row := keywordRuleRow{
		Keyword:  rule.Keyword,
		Category: rule.Category,
		Label:    rule.Label,
		Language: string(rule.Language),
		IsActive: rule.IsActive,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create keyword rule %q: %w", rule.Keyword, translateError(err))
	}
	rule.ID = row.ID
	rule.CreatedAt = row.CreatedAt
	rule.UpdatedAt = row.UpdatedAt
	return nil
}

// GetKeywordRule returns a keyword rule by ID, active or not.
func (s *Store) GetKeywordRule(ctx context.Context, id int64) (*model.KeywordRule, error) {
	var row keywordRuleRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, fmt.Errorf("keyword rule %d: %w", id, translateError(err))
	}
	rule := row.toModel()
	return &rule, nil
}

// UpdateKeywordRule rewrites a keyword rule.
func (s *Store) UpdateKeywordRule(ctx context.Context, rule *model.KeywordRule) error {
	if err := storage.PrepareKeywordRule(rule, s.order); err != nil {
		return err
	}
	ts := time.Now().UTC()
	res := s.db.WithContext(ctx).Model(&keywordRuleRow{}).Where("id = ?", rule.ID).Updates(map[string]any{
		"keyword":    rule.Keyword,
		"category":   rule.Category,
		"label":      rule.Label,
		"language":   string(rule.Language),
		"is_active":  rule.IsActive,
		"updated_at": ts,
	})
	if err := requireRowsAffected(res, "keyword rule", rule.ID); err != nil {
		return err
	}
	rule.UpdatedAt = ts
	return nil
}

// SetKeywordRuleActive activates or deactivates a keyword rule.
func (s *Store) SetKeywordRuleActive(ctx context.Context, id int64, active bool) error {
	res := s.db.WithContext(ctx).Model(&keywordRuleRow{}).Where("id = ?", id).Updates(map[string]any{
		"is_active":  active,
		"updated_at": time.Now().UTC(),
	})
	return requireRowsAffected(res, "keyword rule", id)
}

// ListKeywordRules returns keyword rules ordered by ID.
func (s *Store) ListKeywordRules(ctx context.Context, includeInactive bool) ([]model.KeywordRule, error) {
	return s.listKeywordRules(ctx, !includeInactive)
}

// GetActiveKeywordRules returns the rules visible to the classifier.
func (s *Store) GetActiveKeywordRules(ctx context.Context) ([]model.KeywordRule, error) {
	return s.listKeywordRules(ctx, true)
}

func (s *Store) listKeywordRules(ctx context.Context, activeOnly bool) ([]model.KeywordRule, error) {
	q := s.db.WithContext(ctx).Order("id")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var rows []keywordRuleRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list keyword rules: %w", err)
	}
	rules := make([]model.KeywordRule, len(rows))
	for i, row := range rows {
		rules[i] = row.toModel()
	}
	return rules, nil
}
