package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/Veraticus/autocat/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []model.TransactionResult {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return []model.TransactionResult{
		{
			Transaction:    model.Transaction{Date: date, Description: "HYDRO OTTAWA PAYMENT", Amount: -120},
			Classification: model.Classification{Category: "Bills", Label: "Gas & Electricity", Source: model.SourceKeyword, Confidence: 85},
		},
		{
			Transaction:    model.Transaction{Date: date, Description: "TIMHORT 123 MAIN ST", Amount: -2.5},
			Classification: model.Classification{Category: "Food", Label: "Coffee", Source: model.SourceMerchant, Confidence: 90},
		},
		{
			Transaction:    model.Transaction{Date: date, Description: "XYZCORP RANDOM PURCHASE", Amount: -10},
			Classification: model.Uncategorized,
		},
	}
}

func TestFormatClassification(t *testing.T) {
	got := FormatClassification(model.Classification{Category: "Food", Label: "Coffee", Source: model.SourceMerchant, Confidence: 90})
	assert.Contains(t, got, "Food / Coffee")
	assert.Contains(t, got, "merchant")
	assert.Contains(t, got, "90")

	assert.Contains(t, FormatClassification(model.Uncategorized), "Uncategorized")
}

func TestRenderResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderResults(&buf, sampleResults()))

	out := buf.String()
	for _, want := range []string{"Description", "HYDRO OTTAWA PAYMENT", "Gas & Electricity", "TIMHORT 123 MAIN ST", "XYZCORP RANDOM PURCHASE", "-120.00"} {
		assert.Contains(t, out, want)
	}
}

func TestSummarizeResults(t *testing.T) {
	counts := SummarizeResults(sampleResults())
	assert.Equal(t, 1, counts[model.SourceKeyword])
	assert.Equal(t, 1, counts[model.SourceMerchant])
	assert.Equal(t, 1, counts[model.SourceNone])
	assert.Zero(t, counts[model.SourceUserHistory])

	assert.Contains(t, RenderSummary(sampleResults()), "Classification summary")
}

func TestRenderRules(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderMerchantRules(&buf, []model.MerchantRule{
		{ID: 1, Pattern: "TIM HORTONS", AlternatePatterns: []string{"TIMHORT"}, Category: "Food", Label: "Coffee", IsActive: true},
	}))
	assert.Contains(t, buf.String(), "TIMHORT")

	buf.Reset()
	require.NoError(t, RenderKeywordRules(&buf, []model.KeywordRule{
		{ID: 7, Keyword: "LOYER", Category: "Housing", Label: "Rent", Language: model.LanguageFrench},
	}))
	assert.Contains(t, buf.String(), "LOYER")
	assert.Contains(t, buf.String(), "fr")

	buf.Reset()
	require.NoError(t, RenderLearnedPatterns(&buf, []model.LearnedPattern{
		{ID: 3, DescriptionPattern: "HYDRO OTTAWA PAYMENT", CorrectedCategory: "Utilities-Custom", CorrectedLabel: "My Hydro", OriginalCategory: "Bills", Frequency: 2},
	}))
	assert.Contains(t, buf.String(), "Utilities-Custom")
	assert.Contains(t, buf.String(), "Bills")
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 3, "Classifying")
	p.Add(1)
	p.Add(2)
	p.Finish()
	assert.NotEmpty(t, buf.String())
}
