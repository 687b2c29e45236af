package storage

import (
	"context"
	"testing"

	"github.com/Veraticus/autocat/internal/common"
	"github.com/Veraticus/autocat/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStorage_CreateKeywordRule(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	rule := &model.KeywordRule{Keyword: " hydro ", Category: "Bills", Label: "Gas & Electricity", IsActive: true}
	require.NoError(t, store.CreateKeywordRule(ctx, rule))

	got, err := store.GetKeywordRule(ctx, rule.ID)
	require.NoError(t, err)
	assert.Equal(t, "HYDRO", got.Keyword)
	assert.Equal(t, model.LanguageBoth, got.Language)
	assert.Equal(t, "Gas & Electricity", got.Label)
}

func TestSQLiteStorage_KeywordRuleUniquePerCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.CreateKeywordRule(ctx, &model.KeywordRule{Keyword: "INSUR", Category: "Bills", IsActive: true}))
	require.NoError(t, store.CreateKeywordRule(ctx, &model.KeywordRule{Keyword: "INSUR", Category: "Health", IsActive: true}),
		"the same keyword may target another category")

	err := store.CreateKeywordRule(ctx, &model.KeywordRule{Keyword: "insur", Category: "Bills", IsActive: true})
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
}

func TestSQLiteStorage_KeywordRuleValidation(t *testing.T) {
	order, err := model.NewCategoryOrder([]string{"Housing", "Bills"})
	require.NoError(t, err)

	store, err := NewSQLiteStorage(":memory:", WithCategoryOrder(order))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))

	tests := []struct {
		rule *model.KeywordRule
		name string
	}{
		{name: "missing keyword", rule: &model.KeywordRule{Category: "Bills"}},
		{name: "missing category", rule: &model.KeywordRule{Keyword: "RENT"}},
		{name: "category outside order", rule: &model.KeywordRule{Keyword: "GROCER", Category: "Food"}},
		{name: "bad language", rule: &model.KeywordRule{Keyword: "LOYER", Category: "Housing", Language: "de"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, store.CreateKeywordRule(ctx, tt.rule), ErrInvalidKeywordRule)
		})
	}

	require.NoError(t, store.CreateKeywordRule(ctx, &model.KeywordRule{Keyword: "LOYER", Category: "Housing", Language: model.LanguageFrench, IsActive: true}))
}

func TestSQLiteStorage_KeywordRuleActivationAndOrder(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	first := &model.KeywordRule{Keyword: "RENT", Category: "Housing", Label: "Rent", IsActive: true}
	second := &model.KeywordRule{Keyword: "GYM", Category: "Health", Label: "Fitness", IsActive: true}
	require.NoError(t, store.CreateKeywordRule(ctx, first))
	require.NoError(t, store.CreateKeywordRule(ctx, second))

	require.NoError(t, store.SetKeywordRuleActive(ctx, first.ID, false))

	active, err := store.GetActiveKeywordRules(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "GYM", active[0].Keyword)

	all, err := store.ListKeywordRules(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID, "rules come back in storage order")

	second.Label = "Gym"
	second.Language = model.LanguageEnglish
	require.NoError(t, store.UpdateKeywordRule(ctx, second))
	got, err := store.GetKeywordRule(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gym", got.Label)
	assert.Equal(t, model.LanguageEnglish, got.Language)

	assert.ErrorIs(t, store.SetKeywordRuleActive(ctx, 777, true), common.ErrNotFound)
	_, err = store.GetKeywordRule(ctx, 777)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
