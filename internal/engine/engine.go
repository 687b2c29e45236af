// Package engine classifies transaction descriptions against the rule tiers
// and records user corrections as learned patterns.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/autocat/internal/common"
	"github.com/Veraticus/autocat/internal/model"
	"github.com/Veraticus/autocat/internal/pattern"
	"github.com/Veraticus/autocat/internal/service"
)

// DefaultRuleCacheTTL is how long a loaded rule snapshot is reused.
const DefaultRuleCacheTTL = 5 * time.Minute

// Config holds configuration options for the engine.
type Config struct {
	CategoryOrder model.CategoryOrder
	// Granularity is "full" or "tokens:N".
	Granularity  string
	Retry        service.RetryOptions
	RuleCacheTTL time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		CategoryOrder: model.DefaultCategoryOrder(),
		Granularity:   GranularityFull,
		Retry:         common.DefaultRetryOptions(),
		RuleCacheTTL:  DefaultRuleCacheTTL,
	}
}

// Engine is safe for concurrent use.
type Engine struct {
	store       service.RuleStore
	now         func() time.Time
	rules       *pattern.RuleSet
	expiry      time.Time
	order       model.CategoryOrder
	retry       service.RetryOptions
	granularity Granularity
	ttl         time.Duration
	mu          sync.RWMutex
}

// New creates an engine reading rules from store.
func New(store service.RuleStore, cfg Config) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: rule store is required", common.ErrMissingConfig)
	}
	granularity, err := ParseGranularity(cfg.Granularity)
	if err != nil {
		return nil, err
	}
	if cfg.CategoryOrder.Len() == 0 {
		cfg.CategoryOrder = model.DefaultCategoryOrder()
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = common.DefaultRetryOptions()
	}
	if cfg.RuleCacheTTL < 0 {
		return nil, fmt.Errorf("%w: rule cache TTL must not be negative", common.ErrInvalidConfig)
	}

	return &Engine{
		store:       store,
		now:         time.Now,
		order:       cfg.CategoryOrder,
		retry:       cfg.Retry,
		granularity: granularity,
		ttl:         cfg.RuleCacheTTL,
	}, nil
}

// Classify returns the best classification for description as seen by userID.
// It never fails: a store outage is logged and yields Uncategorized.
func (e *Engine) Classify(ctx context.Context, userID, description string) model.Classification {
	result, err := e.TryClassify(ctx, userID, description)
	if err != nil {
		slog.Warn("Classification degraded to uncategorized",
			"user_id", userID,
			"description", description,
			"error", err)
		return model.Uncategorized
	}
	return result
}

// TryClassify is Classify for callers that need to tell a miss from an outage.
// The error wraps common.ErrRuleStoreUnavailable.
func (e *Engine) TryClassify(ctx context.Context, userID, description string) (model.Classification, error) {
	desc := pattern.NewDescription(description)
	if desc.IsEmpty() {
		return model.Uncategorized, nil
	}

	rules, err := e.ruleSet(ctx)
	if err != nil {
		return model.Uncategorized, err
	}
	learned, err := e.learnedFor(ctx, userID)
	if err != nil {
		return model.Uncategorized, err
	}
	return rules.Classify(desc, learned), nil
}

// ClassifyBatch classifies txns with one rule snapshot and one learned-pattern
// read per user. Results are in input order.
func (e *Engine) ClassifyBatch(ctx context.Context, txns []model.Transaction) []model.TransactionResult {
	results := make([]model.TransactionResult, len(txns))
	for i, txn := range txns {
		results[i] = model.TransactionResult{Transaction: txn, Classification: model.Uncategorized}
	}
	if len(txns) == 0 {
		return results
	}

	rules, err := e.ruleSet(ctx)
	if err != nil {
		slog.Warn("Batch classification degraded to uncategorized", "count", len(txns), "error", err)
		return results
	}

	learnedByUser := make(map[string]*pattern.LearnedMatcher)
	failedUsers := make(map[string]bool)
	for i, txn := range txns {
		desc := pattern.NewDescription(txn.Description)
		userID := normalizeUserID(txn.UserID)
		if desc.IsEmpty() || failedUsers[userID] {
			continue
		}

		learned, seen := learnedByUser[userID]
		if !seen {
			learned, err = e.learnedFor(ctx, userID)
			if err != nil {
				slog.Warn("Skipping transactions for user with unreadable history",
					"user_id", userID,
					"error", err)
				failedUsers[userID] = true
				continue
			}
			learnedByUser[userID] = learned
		}

		results[i].Classification = rules.Classify(desc, learned)
	}
	return results
}

// RecordCorrection remembers the user's choice for the correction's
// description pattern and returns the stored learned pattern.
func (e *Engine) RecordCorrection(ctx context.Context, c model.Correction) (*model.LearnedPattern, error) {
	userID := normalizeUserID(c.UserID)
	category := strings.TrimSpace(c.CorrectedCategory)
	descriptionPattern := e.granularity.Pattern(pattern.NewDescription(c.Description))

	switch {
	case userID == "":
		return nil, fmt.Errorf("%w: user ID is required", common.ErrInvalidCorrection)
	case descriptionPattern == "":
		return nil, fmt.Errorf("%w: description is empty", common.ErrInvalidCorrection)
	case category == "":
		return nil, fmt.Errorf("%w: corrected category is required", common.ErrInvalidCorrection)
	}

	var stored *model.LearnedPattern
	err := common.WithRetry(ctx, func() error {
		p := &model.LearnedPattern{
			UserID:             userID,
			DescriptionPattern: descriptionPattern,
			CorrectedCategory:  category,
			CorrectedLabel:     strings.TrimSpace(c.CorrectedLabel),
			LastUsed:           e.now().UTC(),
		}
		if c.Prior != nil && c.Prior.IsCategorized() {
			p.OriginalCategory = c.Prior.Category
			p.OriginalLabel = c.Prior.Label
		}
		if err := e.store.UpsertLearnedPattern(ctx, p); err != nil {
			return err
		}
		stored = p
		return nil
	}, e.retry)
	if err != nil {
		return nil, common.Unavailable("record correction", err)
	}

	slog.Info("Recorded correction",
		"user_id", userID,
		"pattern", stored.DescriptionPattern,
		"category", stored.CorrectedCategory,
		"frequency", stored.Frequency)
	return stored, nil
}

// Invalidate drops the cached rule snapshot so the next call reloads it.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	e.rules = nil
	e.expiry = time.Time{}
	e.mu.Unlock()
}

// Granularity reports how correction patterns are derived.
func (e *Engine) Granularity() Granularity {
	return e.granularity
}

func (e *Engine) ruleSet(ctx context.Context) (*pattern.RuleSet, error) {
	e.mu.RLock()
	if e.rules != nil && e.now().Before(e.expiry) {
		rules := e.rules
		e.mu.RUnlock()
		return rules, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Another caller may have reloaded while we waited for the lock.
	if e.rules != nil && e.now().Before(e.expiry) {
		return e.rules, nil
	}

	merchants, err := e.store.GetActiveMerchantRules(ctx)
	if err != nil {
		return nil, common.Unavailable("load merchant rules", err)
	}
	keywords, err := e.store.GetActiveKeywordRules(ctx)
	if err != nil {
		return nil, common.Unavailable("load keyword rules", err)
	}

	rules := pattern.NewRuleSet(merchants, keywords, e.order)
	if unranked := rules.Keywords.Unranked(); len(unranked) > 0 {
		slog.Warn("Keyword rule categories missing from category order; they will be tried last",
			"categories", unranked)
	}
	slog.Debug("Loaded rule snapshot",
		"merchant_rules", rules.Merchants.Len(),
		"keyword_rules", rules.Keywords.Len())

	e.rules = rules
	e.expiry = e.now().Add(e.ttl)
	return rules, nil
}

// normalizeUserID is applied on every path that reads or writes learned
// patterns so a correction is found under the same key it was stored with.
func normalizeUserID(userID string) string {
	return strings.TrimSpace(userID)
}

func (e *Engine) learnedFor(ctx context.Context, userID string) (*pattern.LearnedMatcher, error) {
	userID = normalizeUserID(userID)
	if userID == "" {
		return nil, nil
	}
	patterns, err := e.store.GetLearnedPatterns(ctx, userID)
	if err != nil {
		return nil, common.Unavailable("load learned patterns", err)
	}
	return pattern.NewLearnedMatcher(userID, patterns), nil
}
