// Package pattern normalizes transaction descriptions and matches them against the rule tiers.
package pattern

import "github.com/Veraticus/autocat/internal/model"

// Matcher evaluates a normalized description against one tier of rules.
type Matcher interface {
	// Match returns the tier's classification and true on a hit.
	// A miss is not an error.
	Match(desc Description) (model.Classification, bool)
}
