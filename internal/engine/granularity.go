package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/autocat/internal/common"
	"github.com/Veraticus/autocat/internal/pattern"
)

// Granularity decides how much of a corrected description is remembered.
// The zero value keeps the whole normalized description.
type Granularity struct {
	tokens int
}

// GranularityFull remembers the whole normalized description.
const GranularityFull = "full"

const tokensPrefix = "tokens:"

// ParseGranularity accepts "full" (or empty) and "tokens:N" with N > 0.
func ParseGranularity(s string) (Granularity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == GranularityFull {
		return Granularity{}, nil
	}
	if !strings.HasPrefix(s, tokensPrefix) {
		return Granularity{}, fmt.Errorf("%w: pattern granularity %q (want %q or %q)",
			common.ErrInvalidConfig, s, GranularityFull, tokensPrefix+"N")
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, tokensPrefix))
	if err != nil || n <= 0 {
		return Granularity{}, fmt.Errorf("%w: pattern granularity %q needs a positive token count",
			common.ErrInvalidConfig, s)
	}
	return Granularity{tokens: n}, nil
}

// Pattern derives the learned description pattern from desc.
func (g Granularity) Pattern(desc pattern.Description) string {
	if g.tokens == 0 {
		return desc.Normalized
	}
	fields := strings.Fields(desc.Normalized)
	if len(fields) > g.tokens {
		fields = fields[:g.tokens]
	}
	return strings.Join(fields, " ")
}

func (g Granularity) String() string {
	if g.tokens == 0 {
		return GranularityFull
	}
	return tokensPrefix + strconv.Itoa(g.tokens)
}
