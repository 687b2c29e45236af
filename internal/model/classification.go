package model

// Source identifies which tier produced a classification.
type Source string

// Source constants.
const (
	SourceNone        Source = ""
	SourceUserHistory Source = "userHistory"
	SourceMerchant    Source = "merchant"
	SourceKeyword     Source = "keyword"
)

// Confidence baselines per tier. Confidence is ordinal, not a probability.
const (
	UserHistoryBaseConfidence = 95
	MaxConfidence             = 100
	MerchantConfidence        = 90
	KeywordConfidence         = 85
)

// Classification is the outcome of running a description through the tiers.
// The zero value is Uncategorized.
type Classification struct {
	Category   string `json:"category,omitempty"`
	Label      string `json:"label,omitempty"`
	Source     Source `json:"source,omitempty"`
	Confidence int    `json:"confidence"`
	// RuleID is the ID of the learned pattern or rule that produced the hit.
	RuleID int64 `json:"rule_id,omitempty"`
}

// Uncategorized is the terminal state for descriptions no tier has an opinion about.
var Uncategorized = Classification{}

// IsCategorized reports whether any tier matched.
func (c Classification) IsCategorized() bool {
	return c.Source != SourceNone
}

// UserHistoryConfidence grows from the base toward MaxConfidence as a correction is reconfirmed.
func UserHistoryConfidence(frequency int) int {
	if frequency < 0 {
		frequency = 0
	}
	return min(MaxConfidence, UserHistoryBaseConfidence+frequency)
}

// TransactionResult pairs an input transaction with its classification.
type TransactionResult struct {
	Transaction    Transaction
	Classification Classification
}
