// Package storage provides the SQLite rule store and the validation shared by every backend.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/autocat/internal/model"
	"github.com/Veraticus/autocat/internal/pattern"
)

// Validation errors.
var (
	ErrNilContext            = errors.New("context cannot be nil")
	ErrEmptyString           = errors.New("string parameter cannot be empty")
	ErrNilParameter          = errors.New("parameter cannot be nil")
	ErrInvalidMerchantRule   = errors.New("invalid merchant rule")
	ErrInvalidKeywordRule    = errors.New("invalid keyword rule")
	ErrInvalidLearnedPattern = errors.New("invalid learned pattern")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// PrepareMerchantRule validates rule and rewrites its pattern and alternates
// into normalized form. Repeated alternates are collapsed; an alternate equal
// to the rule's own pattern is rejected.
func PrepareMerchantRule(rule *model.MerchantRule) error {
	if rule == nil {
		return fmt.Errorf("%w: merchant rule", ErrNilParameter)
	}
	rule.Pattern = pattern.Normalize(rule.Pattern)
	rule.Category = strings.TrimSpace(rule.Category)
	rule.Label = strings.TrimSpace(rule.Label)

	if rule.Pattern == "" {
		return fmt.Errorf("%w: missing pattern", ErrInvalidMerchantRule)
	}
	if rule.Category == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidMerchantRule)
	}

	primary := pattern.NormalizeSpaceless(rule.Pattern)
	seen := make(map[string]bool, len(rule.AlternatePatterns))
	alternates := make([]string, 0, len(rule.AlternatePatterns))
	for _, alt := range rule.AlternatePatterns {
		alt = pattern.Normalize(alt)
		if alt == "" {
			continue
		}
		key := pattern.NormalizeSpaceless(alt)
		if key == primary {
			return fmt.Errorf("%w: alternate %q duplicates pattern %q", ErrInvalidMerchantRule, alt, rule.Pattern)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		alternates = append(alternates, alt)
	}
	rule.AlternatePatterns = alternates
	return nil
}

// PrepareKeywordRule validates rule against order and normalizes its keyword.
func PrepareKeywordRule(rule *model.KeywordRule, order model.CategoryOrder) error {
	if rule == nil {
		return fmt.Errorf("%w: keyword rule", ErrNilParameter)
	}
	rule.Keyword = pattern.Normalize(rule.Keyword)
	rule.Category = strings.TrimSpace(rule.Category)
	rule.Label = strings.TrimSpace(rule.Label)

	if rule.Keyword == "" {
		return fmt.Errorf("%w: missing keyword", ErrInvalidKeywordRule)
	}
	if rule.Category == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidKeywordRule)
	}
	if !order.Contains(rule.Category) {
		return fmt.Errorf("%w: category %q is not in the category priority order", ErrInvalidKeywordRule, rule.Category)
	}

	lang, err := model.ParseLanguage(string(rule.Language))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKeywordRule, err)
	}
	rule.Language = lang
	return nil
}

// PrepareLearnedPattern validates p and normalizes its description pattern.
func PrepareLearnedPattern(p *model.LearnedPattern) error {
	if p == nil {
		return fmt.Errorf("%w: learned pattern", ErrNilParameter)
	}
	p.UserID = strings.TrimSpace(p.UserID)
	p.DescriptionPattern = pattern.Normalize(p.DescriptionPattern)
	p.CorrectedCategory = strings.TrimSpace(p.CorrectedCategory)
	p.CorrectedLabel = strings.TrimSpace(p.CorrectedLabel)

	if p.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidLearnedPattern)
	}
	if p.DescriptionPattern == "" {
		return fmt.Errorf("%w: missing description pattern", ErrInvalidLearnedPattern)
	}
	if p.CorrectedCategory == "" {
		return fmt.Errorf("%w: missing corrected category", ErrInvalidLearnedPattern)
	}
	return nil
}
