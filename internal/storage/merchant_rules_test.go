package storage

import (
	"context"
	"testing"

	"github.com/Veraticus/autocat/internal/common"
	"github.com/Veraticus/autocat/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStorage_CreateMerchantRule(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	rule := &model.MerchantRule{
		Pattern:           "  tim   hortons ",
		AlternatePatterns: []string{"timhort", "TIMHORT", "tim hort"},
		Category:          "Food",
		Label:             "Coffee",
		IsActive:          true,
	}
	require.NoError(t, store.CreateMerchantRule(ctx, rule))
	assert.NotZero(t, rule.ID)
	assert.Equal(t, "TIM HORTONS", rule.Pattern)

	got, err := store.GetMerchantRule(ctx, rule.ID)
	require.NoError(t, err)
	assert.Equal(t, "TIM HORTONS", got.Pattern)
	assert.Equal(t, []string{"TIMHORT"}, got.AlternatePatterns, "alternates collapse on their spaceless form")
	assert.Equal(t, "Food", got.Category)
	assert.Equal(t, "Coffee", got.Label)
	assert.True(t, got.IsActive)
}

func TestSQLiteStorage_MerchantRuleUniquePattern(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.CreateMerchantRule(ctx, &model.MerchantRule{Pattern: "STARBUCKS", Category: "Food", IsActive: true}))

	err := store.CreateMerchantRule(ctx, &model.MerchantRule{Pattern: "starbucks", Category: "Work", IsActive: true})
	require.ErrorIs(t, err, common.ErrDuplicateEntry)

	rules, err := store.ListMerchantRules(ctx, true)
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestSQLiteStorage_MerchantRuleAlternatesSharedAcrossRules(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.CreateMerchantRule(ctx, &model.MerchantRule{
		Pattern: "PETRO CANADA", AlternatePatterns: []string{"PETRO"}, Category: "Transport", IsActive: true,
	}))
	require.NoError(t, store.CreateMerchantRule(ctx, &model.MerchantRule{
		Pattern: "PETRO PASS", AlternatePatterns: []string{"PETRO"}, Category: "Work", IsActive: true,
	}))
}

func TestSQLiteStorage_MerchantRuleValidation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		rule *model.MerchantRule
		name string
	}{
		{name: "missing pattern", rule: &model.MerchantRule{Pattern: "  ", Category: "Food"}},
		{name: "missing category", rule: &model.MerchantRule{Pattern: "COSTCO"}},
		{name: "alternate duplicates pattern", rule: &model.MerchantRule{
			Pattern: "TIM HORTONS", AlternatePatterns: []string{"TIMHORTONS"}, Category: "Food",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.CreateMerchantRule(ctx, tt.rule)
			assert.ErrorIs(t, err, ErrInvalidMerchantRule)
		})
	}

	assert.ErrorIs(t, store.CreateMerchantRule(ctx, nil), ErrNilParameter)
}

func TestSQLiteStorage_MerchantRuleActivation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	active := &model.MerchantRule{Pattern: "NETFLIX", AlternatePatterns: []string{"NFLX"}, Category: "Subscriptions", Label: "Streaming", IsActive: true}
	retired := &model.MerchantRule{Pattern: "BLOCKBUSTER", AlternatePatterns: []string{"BLKBSTR"}, Category: "Personal", Label: "Movies", IsActive: true}
	require.NoError(t, store.CreateMerchantRule(ctx, active))
	require.NoError(t, store.CreateMerchantRule(ctx, retired))

	require.NoError(t, store.SetMerchantRuleActive(ctx, retired.ID, false))

	visible, err := store.GetActiveMerchantRules(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "NETFLIX", visible[0].Pattern)
	assert.Equal(t, []string{"NFLX"}, visible[0].AlternatePatterns)

	all, err := store.ListMerchantRules(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.False(t, all[1].IsActive)
	assert.Equal(t, []string{"BLKBSTR"}, all[1].AlternatePatterns, "inactive rules are retained for audit")

	err = store.SetMerchantRuleActive(ctx, 999, true)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStorage_UpdateMerchantRule(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	rule := &model.MerchantRule{Pattern: "UBER", AlternatePatterns: []string{"UBER TRIP"}, Category: "Transport", Label: "Rideshare", IsActive: true}
	require.NoError(t, store.CreateMerchantRule(ctx, rule))

	rule.AlternatePatterns = []string{"UBER EATS", "UBEREATS"}
	rule.Category = "Food"
	rule.Label = "Delivery"
	require.NoError(t, store.UpdateMerchantRule(ctx, rule))

	got, err := store.GetMerchantRule(ctx, rule.ID)
	require.NoError(t, err)
	assert.Equal(t, "Food", got.Category)
	assert.Equal(t, []string{"UBER EATS"}, got.AlternatePatterns)

	missing := &model.MerchantRule{ID: 404, Pattern: "NOPE", Category: "Food"}
	assert.ErrorIs(t, store.UpdateMerchantRule(ctx, missing), common.ErrNotFound)

	_, err = store.GetMerchantRule(ctx, 404)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
