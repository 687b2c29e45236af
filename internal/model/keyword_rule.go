package model

import (
	"fmt"
	"time"
)

// Language tags a keyword rule with the language it was written for.
// It is informational only and never restricts matching.
type Language string

// Language constants.
const (
	LanguageEnglish Language = "en"
	LanguageFrench  Language = "fr"
	LanguageBoth    Language = "both"
)

// ParseLanguage converts a tag into a Language, defaulting empty input to LanguageBoth.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case "":
		return LanguageBoth, nil
	case LanguageEnglish, LanguageFrench, LanguageBoth:
		return Language(s), nil
	default:
		return "", fmt.Errorf("invalid language tag %q: must be en, fr, or both", s)
	}
}

// KeywordRule maps a generic substring to a classification.
type KeywordRule struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Keyword   string    `json:"keyword"`
	Category  string    `json:"category"`
	Label     string    `json:"label"`
	Language  Language  `json:"language"`
	ID        int64     `json:"id"`
	IsActive  bool      `json:"is_active"`
}
