// Package service defines the interfaces between the engine and its rule store.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/autocat/internal/model"
)

// RuleStore is the read side the classifier depends on, plus the single write
// performed by the learning updater.
type RuleStore interface {
	// GetActiveMerchantRules returns active merchant rules ordered by ID.
	GetActiveMerchantRules(ctx context.Context) ([]model.MerchantRule, error)
	// GetActiveKeywordRules returns active keyword rules ordered by ID.
	GetActiveKeywordRules(ctx context.Context) ([]model.KeywordRule, error)
	// GetLearnedPatterns returns the patterns owned by userID and no one else.
	GetLearnedPatterns(ctx context.Context, userID string) ([]model.LearnedPattern, error)
	// UpsertLearnedPattern atomically inserts the pattern or, when one already
	// exists for (UserID, DescriptionPattern), increments its frequency and
	// overwrites the corrected values. The stored row is written back into p.
	UpsertLearnedPattern(ctx context.Context, p *model.LearnedPattern) error
}

// RuleAdmin is the write surface used by the admin tooling.
type RuleAdmin interface {
	// Merchant rule operations
	CreateMerchantRule(ctx context.Context, rule *model.MerchantRule) error
	GetMerchantRule(ctx context.Context, id int64) (*model.MerchantRule, error)
	UpdateMerchantRule(ctx context.Context, rule *model.MerchantRule) error
	SetMerchantRuleActive(ctx context.Context, id int64, active bool) error
	ListMerchantRules(ctx context.Context, includeInactive bool) ([]model.MerchantRule, error)

	// Keyword rule operations
	CreateKeywordRule(ctx context.Context, rule *model.KeywordRule) error
	GetKeywordRule(ctx context.Context, id int64) (*model.KeywordRule, error)
	UpdateKeywordRule(ctx context.Context, rule *model.KeywordRule) error
	SetKeywordRuleActive(ctx context.Context, id int64, active bool) error
	ListKeywordRules(ctx context.Context, includeInactive bool) ([]model.KeywordRule, error)
}

// Storage is a complete rule store backend.
type Storage interface {
	RuleStore
	RuleAdmin

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
