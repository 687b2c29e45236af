package classification

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/autocat/internal/model"
	"github.com/Veraticus/autocat/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRules = `
merchants:
  - pattern: tim hortons
    alternates: [TIMHORT]
    category: Food
    label: Coffee
  - pattern: BLOCKBUSTER
    category: Personal
    label: Movies
    inactive: true
keywords:
  - keyword: HYDRO
    category: Bills
    label: Gas & Electricity
  - keyword: LOYER
    category: Housing
    label: Rent
    language: fr
`

func TestParseRuleFile(t *testing.T) {
	rf, err := ParseRuleFile(strings.NewReader(sampleRules))
	require.NoError(t, err)

	require.Len(t, rf.Merchants, 2)
	assert.Equal(t, []string{"TIMHORT"}, rf.Merchants[0].Alternates)
	assert.True(t, rf.Merchants[0].MerchantRule().IsActive)
	assert.False(t, rf.Merchants[1].MerchantRule().IsActive)

	require.Len(t, rf.Keywords, 2)
	assert.Equal(t, model.LanguageFrench, rf.Keywords[1].KeywordRule().Language)
}

func TestParseRuleFile_Errors(t *testing.T) {
	_, err := ParseRuleFile(strings.NewReader("merchants:\n  - patern: TYPO\n"))
	assert.Error(t, err, "unknown fields are rejected")

	rf, err := ParseRuleFile(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rf.Merchants)
}

func TestLoadRuleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRules), 0o600))

	rf, err := LoadRuleFile(path)
	require.NoError(t, err)
	assert.Len(t, rf.Merchants, 2)

	_, err = LoadRuleFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSeed_Idempotent(t *testing.T) {
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))

	rf, err := ParseRuleFile(strings.NewReader(sampleRules))
	require.NoError(t, err)

	stats, err := Seed(ctx, store, rf)
	require.NoError(t, err)
	assert.Equal(t, SeedStats{MerchantsCreated: 2, KeywordsCreated: 2}, stats)

	stats, err = Seed(ctx, store, rf)
	require.NoError(t, err)
	assert.Equal(t, SeedStats{MerchantsSkipped: 2, KeywordsSkipped: 2}, stats)

	active, err := store.GetActiveMerchantRules(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestSeed_StopsOnInvalidRule(t *testing.T) {
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))

	rf := RuleFile{Keywords: []KeywordEntry{{Keyword: "CASINO", Category: "Gambling"}}}
	_, err = Seed(ctx, store, rf)
	assert.ErrorIs(t, err, storage.ErrInvalidKeywordRule)
}

func TestSeed_Defaults(t *testing.T) {
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))

	stats, err := Seed(ctx, store, Defaults())
	require.NoError(t, err)
	assert.Equal(t, len(DefaultMerchants()), stats.MerchantsCreated)
	assert.Equal(t, len(DefaultKeywords()), stats.KeywordsCreated)
}
