package classification

import (
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/autocat/internal/model"
	"gopkg.in/yaml.v3"
)

// MerchantEntry is a merchant rule as written in a rule file.
type MerchantEntry struct {
	Pattern    string   `yaml:"pattern"`
	Category   string   `yaml:"category"`
	Label      string   `yaml:"label"`
	Alternates []string `yaml:"alternates,omitempty"`
	// Inactive rules are loaded but stay invisible to matching.
	Inactive bool `yaml:"inactive,omitempty"`
}

// KeywordEntry is a keyword rule as written in a rule file.
type KeywordEntry struct {
	Keyword  string `yaml:"keyword"`
	Category string `yaml:"category"`
	Label    string `yaml:"label"`
	Language string `yaml:"language,omitempty"`
	Inactive bool   `yaml:"inactive,omitempty"`
}

// RuleFile is the YAML document accepted by the seed command.
//
//	merchants:
//	  - pattern: TIM HORTONS
//	    alternates: [TIMHORT]
//	    category: Food
//	    label: Coffee
//	keywords:
//	  - keyword: HYDRO
//	    category: Bills
//	    label: Gas & Electricity
type RuleFile struct {
	Merchants []MerchantEntry `yaml:"merchants"`
	Keywords  []KeywordEntry  `yaml:"keywords"`
}

// LoadRuleFile reads a rule file from disk.
func LoadRuleFile(path string) (RuleFile, error) {
	f, err := os.Open(path) //nolint:gosec // path is supplied by the operator
	if err != nil {
		return RuleFile{}, fmt.Errorf("failed to open rule file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseRuleFile(f)
}

// ParseRuleFile decodes a rule file, rejecting unknown fields.
func ParseRuleFile(r io.Reader) (RuleFile, error) {
	var rf RuleFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rf); err != nil {
		if err == io.EOF {
			return RuleFile{}, nil
		}
		return RuleFile{}, fmt.Errorf("failed to parse rule file: %w", err)
	}
	return rf, nil
}

// MerchantRule converts the entry into a model rule.
func (e MerchantEntry) MerchantRule() model.MerchantRule {
	alternates := make([]string, len(e.Alternates))
	copy(alternates, e.Alternates)
	return model.MerchantRule{
		Pattern:           e.Pattern,
		AlternatePatterns: alternates,
		Category:          e.Category,
		Label:             e.Label,
		IsActive:          !e.Inactive,
	}
}

// KeywordRule converts the entry into a model rule.
func (e KeywordEntry) KeywordRule() model.KeywordRule {
	return model.KeywordRule{
		Keyword:  e.Keyword,
		Category: e.Category,
		Label:    e.Label,
		Language: model.Language(e.Language),
		IsActive: !e.Inactive,
	}
}
