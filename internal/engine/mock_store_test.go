package engine

import (
	"context"
	"sync"

	"github.com/Veraticus/autocat/internal/model"
	"github.com/Veraticus/autocat/internal/service"
)

// flakyStore wraps a real store and injects failures.
type flakyStore struct {
	inner          service.RuleStore
	merchantErr    error
	keywordErr     error
	learnedErr     error
	upsertErrs     []error
	merchantLoads  int
	learnedLoads   map[string]int
	upsertAttempts int
	mu             sync.Mutex
}

func newFlakyStore(inner service.RuleStore) *flakyStore {
	return &flakyStore{inner: inner, learnedLoads: make(map[string]int)}
}

func (f *flakyStore) GetActiveMerchantRules(ctx context.Context) ([]model.MerchantRule, error) {
	f.mu.Lock()
	f.merchantLoads++
	err := f.merchantErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.inner.GetActiveMerchantRules(ctx)
}

func (f *flakyStore) GetActiveKeywordRules(ctx context.Context) ([]model.KeywordRule, error) {
	f.mu.Lock()
	err := f.keywordErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.inner.GetActiveKeywordRules(ctx)
}

func (f *flakyStore) GetLearnedPatterns(ctx context.Context, userID string) ([]model.LearnedPattern, error) {
	f.mu.Lock()
	f.learnedLoads[userID]++
	err := f.learnedErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.inner.GetLearnedPatterns(ctx, userID)
}

func (f *flakyStore) UpsertLearnedPattern(ctx context.Context, p *model.LearnedPattern) error {
	f.mu.Lock()
	f.upsertAttempts++
	var err error
	if len(f.upsertErrs) > 0 {
		err, f.upsertErrs = f.upsertErrs[0], f.upsertErrs[1:]
	}
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.inner.UpsertLearnedPattern(ctx, p)
}

func (f *flakyStore) setLearnedErr(err error) {
	f.mu.Lock()
	f.learnedErr = err
	f.mu.Unlock()
}
