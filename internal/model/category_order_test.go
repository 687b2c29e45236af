package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategoryOrder(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		input   []string
		wantErr bool
	}{
		{
			name:  "valid order",
			input: []string{"Housing", "Bills", "Food"},
		},
		{
			name:    "empty order",
			input:   nil,
			wantErr: true,
			errMsg:  "cannot be empty",
		},
		{
			name:    "blank name",
			input:   []string{"Housing", "  "},
			wantErr: true,
			errMsg:  "empty name",
		},
		{
			name:    "duplicate name",
			input:   []string{"Housing", "Bills", "Housing"},
			wantErr: true,
			errMsg:  "more than once",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := NewCategoryOrder(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.input), order.Len())
		})
	}
}

func TestCategoryOrder_Rank(t *testing.T) {
	order := DefaultCategoryOrder()

	housing, ok := order.Rank("Housing")
	require.True(t, ok)
	bills, ok := order.Rank("Bills")
	require.True(t, ok)
	assert.Less(t, housing, bills)

	work, ok := order.Rank("Work")
	require.True(t, ok)
	assert.Equal(t, len(DefaultCategoryNames)-1, work)

	_, ok = order.Rank("Utilities-Custom")
	assert.False(t, ok)
	assert.False(t, order.Contains("housing"), "ranking is case-sensitive")
}

func TestCategoryOrder_NamesIsCopy(t *testing.T) {
	order := DefaultCategoryOrder()
	names := order.Names()
	names[0] = "Mutated"

	assert.Equal(t, "Housing", order.Names()[0])
}

func TestUserHistoryConfidence(t *testing.T) {
	assert.Equal(t, 95, UserHistoryConfidence(0))
	assert.Equal(t, 96, UserHistoryConfidence(1))
	assert.Equal(t, 100, UserHistoryConfidence(5))
	assert.Equal(t, 100, UserHistoryConfidence(500))
	assert.Equal(t, 95, UserHistoryConfidence(-3))
}

func TestParseLanguage(t *testing.T) {
	lang, err := ParseLanguage("")
	require.NoError(t, err)
	assert.Equal(t, LanguageBoth, lang)

	lang, err = ParseLanguage("fr")
	require.NoError(t, err)
	assert.Equal(t, LanguageFrench, lang)

	_, err = ParseLanguage("de")
	assert.Error(t, err)
}

func TestClassification_IsCategorized(t *testing.T) {
	assert.False(t, Uncategorized.IsCategorized())
	assert.Equal(t, 0, Uncategorized.Confidence)
	assert.True(t, Classification{Category: "Food", Source: SourceMerchant, Confidence: 90}.IsCategorized())
}
