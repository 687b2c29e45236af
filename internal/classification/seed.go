package classification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/autocat/internal/common"
	"github.com/Veraticus/autocat/internal/service"
)

// SeedStats counts what a seed run did.
type SeedStats struct {
	MerchantsCreated int
	MerchantsSkipped int
	KeywordsCreated  int
	KeywordsSkipped  int
}

// Seed writes every rule in rf through admin. Rules that already exist are
// skipped, so seeding the same file twice is harmless.
func Seed(ctx context.Context, admin service.RuleAdmin, rf RuleFile) (SeedStats, error) {
	var stats SeedStats

	for _, entry := range rf.Merchants {
		rule := entry.MerchantRule()
		err := admin.CreateMerchantRule(ctx, &rule)
		switch {
		case errors.Is(err, common.ErrDuplicateEntry):
			stats.MerchantsSkipped++
			slog.Debug("Merchant rule already exists", "pattern", entry.Pattern)
		case err != nil:
			return stats, fmt.Errorf("failed to seed merchant rule %q: %w", entry.Pattern, err)
		default:
			stats.MerchantsCreated++
		}
	}

	for _, entry := range rf.Keywords {
		rule := entry.KeywordRule()
		err := admin.CreateKeywordRule(ctx, &rule)
		switch {
		case errors.Is(err, common.ErrDuplicateEntry):
			stats.KeywordsSkipped++
			slog.Debug("Keyword rule already exists", "keyword", entry.Keyword, "category", entry.Category)
		case err != nil:
			return stats, fmt.Errorf("failed to seed keyword rule %q: %w", entry.Keyword, err)
		default:
			stats.KeywordsCreated++
		}
	}

	slog.Info("Seeded rules",
		"merchants_created", stats.MerchantsCreated,
		"merchants_skipped", stats.MerchantsSkipped,
		"keywords_created", stats.KeywordsCreated,
		"keywords_skipped", stats.KeywordsSkipped)
	return stats, nil
}
