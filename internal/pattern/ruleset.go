package pattern

import (
	"time"

	"github.com/Veraticus/autocat/internal/model"
)

// RuleSet is an immutable snapshot of the admin-curated tiers.
// It is safe for concurrent use.
type RuleSet struct {
	LoadedAt  time.Time
	Merchants *MerchantMatcher
	Keywords  *KeywordMatcher
}

// NewRuleSet compiles merchant and keyword rules into a snapshot.
func NewRuleSet(merchants []model.MerchantRule, keywords []model.KeywordRule, order model.CategoryOrder) *RuleSet {
	return &RuleSet{
		LoadedAt:  time.Now(),
		Merchants: NewMerchantMatcher(merchants),
		Keywords:  NewKeywordMatcher(keywords, order),
	}
}

// Classify runs the learned tier for one user ahead of this snapshot's tiers.
// learned may be nil when the user has no history.
func (rs *RuleSet) Classify(desc Description, learned *LearnedMatcher) model.Classification {
	if learned == nil {
		return Classify(desc, rs.Merchants, rs.Keywords)
	}
	return Classify(desc, learned, rs.Merchants, rs.Keywords)
}
