package pattern

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/autocat/internal/model"
)

// Classify runs desc through tiers in order. The first tier with a hit wins and
// later tiers are never consulted.
func Classify(desc Description, tiers ...Matcher) model.Classification {
	if desc.IsEmpty() {
		return model.Uncategorized
	}
	for _, tier := range tiers {
		if tier == nil {
			continue
		}
		if result, ok := tier.Match(desc); ok {
			return result
		}
	}
	return model.Uncategorized
}

// LearnedMatcher matches a single user's learned patterns.
type LearnedMatcher struct {
	patterns []model.LearnedPattern
}

// NewLearnedMatcher builds a matcher over the patterns owned by userID.
// Patterns belonging to any other user are discarded.
func NewLearnedMatcher(userID string, patterns []model.LearnedPattern) *LearnedMatcher {
	m := &LearnedMatcher{patterns: make([]model.LearnedPattern, 0, len(patterns))}
	for _, p := range patterns {
		if p.UserID != userID {
			continue
		}
		p.DescriptionPattern = Normalize(p.DescriptionPattern)
		if p.DescriptionPattern == "" {
			continue
		}
		m.patterns = append(m.patterns, p)
	}
	return m
}

// Len returns the number of usable patterns.
func (m *LearnedMatcher) Len() int {
	return len(m.patterns)
}

// Match returns the best learned pattern contained in the description.
func (m *LearnedMatcher) Match(desc Description) (model.Classification, bool) {
	var best *model.LearnedPattern
	for i := range m.patterns {
		p := &m.patterns[i]
		if !strings.Contains(desc.Normalized, p.DescriptionPattern) {
			continue
		}
		if best == nil || preferLearned(p, best) {
			best = p
		}
	}
	if best == nil {
		return model.Uncategorized, false
	}
	return model.Classification{
		Category:   best.CorrectedCategory,
		Label:      best.CorrectedLabel,
		Source:     model.SourceUserHistory,
		Confidence: model.UserHistoryConfidence(best.Frequency),
		RuleID:     best.ID,
	}, true
}

// preferLearned orders by frequency, then recency, then specificity, then ID.
func preferLearned(a, b *model.LearnedPattern) bool {
	if a.Frequency != b.Frequency {
		return a.Frequency > b.Frequency
	}
	if !a.LastUsed.Equal(b.LastUsed) {
		return a.LastUsed.After(b.LastUsed)
	}
	if la, lb := utf8.RuneCountInString(a.DescriptionPattern), utf8.RuneCountInString(b.DescriptionPattern); la != lb {
		return la > lb
	}
	return a.ID < b.ID
}

type merchantEntry struct {
	pattern    string
	alternates []string
	rule       model.MerchantRule
}

// MerchantMatcher matches active merchant rules by canonical pattern or alternate spelling.
type MerchantMatcher struct {
	entries []merchantEntry
}

// NewMerchantMatcher builds a matcher over the active rules, in ID order.
func NewMerchantMatcher(rules []model.MerchantRule) *MerchantMatcher {
	m := &MerchantMatcher{entries: make([]merchantEntry, 0, len(rules))}
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		entry := merchantEntry{
			rule:    rule,
			pattern: Normalize(rule.Pattern),
		}
		for _, alt := range rule.AlternatePatterns {
			if s := NormalizeSpaceless(alt); s != "" {
				entry.alternates = append(entry.alternates, s)
			}
		}
		if entry.pattern == "" && len(entry.alternates) == 0 {
			continue
		}
		m.entries = append(m.entries, entry)
	}
	sort.SliceStable(m.entries, func(i, j int) bool {
		return m.entries[i].rule.ID < m.entries[j].rule.ID
	})
	return m
}

// Len returns the number of active merchant rules.
func (m *MerchantMatcher) Len() int {
	return len(m.entries)
}

// Match returns the rule whose matching pattern or alternate is longest.
func (m *MerchantMatcher) Match(desc Description) (model.Classification, bool) {
	var best *merchantEntry
	bestLen := 0
	for i := range m.entries {
		e := &m.entries[i]
		n := e.matchLength(desc)
		if n > bestLen {
			best, bestLen = e, n
		}
	}
	if best == nil {
		return model.Uncategorized, false
	}
	return model.Classification{
		Category:   best.rule.Category,
		Label:      best.rule.Label,
		Source:     model.SourceMerchant,
		Confidence: model.MerchantConfidence,
		RuleID:     best.rule.ID,
	}, true
}

// matchLength returns the length of the longest token of e found in desc, or 0.
func (e *merchantEntry) matchLength(desc Description) int {
	longest := 0
	if e.pattern != "" && strings.Contains(desc.Normalized, e.pattern) {
		longest = utf8.RuneCountInString(e.pattern)
	}
	for _, alt := range e.alternates {
		if n := utf8.RuneCountInString(alt); n > longest && strings.Contains(desc.Spaceless, alt) {
			longest = n
		}
	}
	return longest
}

// KeywordMatcher scans active keyword rules in category priority order.
type KeywordMatcher struct {
	rules    []model.KeywordRule
	unranked []string
}

// NewKeywordMatcher orders the active rules by category rank, then by ID.
// Rules whose category is missing from order sort after every ranked category.
func NewKeywordMatcher(rules []model.KeywordRule, order model.CategoryOrder) *KeywordMatcher {
	m := &KeywordMatcher{rules: make([]model.KeywordRule, 0, len(rules))}
	seenUnranked := make(map[string]bool)
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		rule.Keyword = Normalize(rule.Keyword)
		if rule.Keyword == "" {
			continue
		}
		if !order.Contains(rule.Category) && !seenUnranked[rule.Category] {
			seenUnranked[rule.Category] = true
			m.unranked = append(m.unranked, rule.Category)
		}
		m.rules = append(m.rules, rule)
	}

	rank := func(category string) int {
		if r, ok := order.Rank(category); ok {
			return r
		}
		return order.Len()
	}
	sort.SliceStable(m.rules, func(i, j int) bool {
		ri, rj := rank(m.rules[i].Category), rank(m.rules[j].Category)
		if ri != rj {
			return ri < rj
		}
		return m.rules[i].ID < m.rules[j].ID
	})
	return m
}

// Len returns the number of active keyword rules.
func (m *KeywordMatcher) Len() int {
	return len(m.rules)
}

// Unranked lists categories referenced by rules but absent from the category order.
func (m *KeywordMatcher) Unranked() []string {
	return m.unranked
}

// Match returns the first keyword contained in the description.
func (m *KeywordMatcher) Match(desc Description) (model.Classification, bool) {
	for _, rule := range m.rules {
		if strings.Contains(desc.Normalized, rule.Keyword) {
			return model.Classification{
				Category:   rule.Category,
				Label:      rule.Label,
				Source:     model.SourceKeyword,
				Confidence: model.KeywordConfidence,
				RuleID:     rule.ID,
			}, true
		}
	}
	return model.Uncategorized, false
}
