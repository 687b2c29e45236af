package gormstore

import (
	"time"

	"github.com/Veraticus/autocat/internal/model"
)

type merchantRuleRow struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Pattern   string `gorm:"size:255;uniqueIndex;not null"`
	Category  string `gorm:"size:64;not null"`
	Label     string `gorm:"size:128;not null;default:''"`
	ID        int64  `gorm:"primaryKey"`
	IsActive  bool   `gorm:"index;not null"`
}

func (merchantRuleRow) TableName() string { return "merchant_rules" }

type merchantAliasRow struct {
	Alias      string `gorm:"primaryKey;size:255"`
	MerchantID int64  `gorm:"primaryKey;autoIncrement:false"`
	Position   int    `gorm:"not null;default:0"`
}

func (merchantAliasRow) TableName() string { return "merchant_aliases" }

type keywordRuleRow struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Keyword   string `gorm:"size:128;not null;uniqueIndex:idx_keyword_category"`
	Category  string `gorm:"size:64;not null;index;uniqueIndex:idx_keyword_category"`
	Label     string `gorm:"size:128;not null;default:''"`
	Language  string `gorm:"size:8;not null;default:'both'"`
	ID        int64  `gorm:"primaryKey"`
	IsActive  bool   `gorm:"index;not null"`
}

func (keywordRuleRow) TableName() string { return "keyword_rules" }

type learnedPatternRow struct {
	LastUsed           time.Time `gorm:"not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	OriginalCategory   *string `gorm:"size:64"`
	OriginalLabel      *string `gorm:"size:128"`
	UserID             string  `gorm:"size:128;not null;uniqueIndex:idx_user_pattern"`
	DescriptionPattern string  `gorm:"size:512;not null;uniqueIndex:idx_user_pattern"`
	CorrectedCategory  string  `gorm:"size:64;not null"`
	CorrectedLabel     string  `gorm:"size:128;not null;default:''"`
	ID                 int64   `gorm:"primaryKey"`
	Frequency          int     `gorm:"not null;default:1"`
}

func (learnedPatternRow) TableName() string { return "learned_patterns" }

func (r merchantRuleRow) toModel(aliases []string) model.MerchantRule {
	if aliases == nil {
		aliases = []string{}
	}
	return model.MerchantRule{
		ID:                r.ID,
		Pattern:           r.Pattern,
		AlternatePatterns: aliases,
		Category:          r.Category,
		Label:             r.Label,
		IsActive:          r.IsActive,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func (r keywordRuleRow) toModel() model.KeywordRule {
	return model.KeywordRule{
		ID:        r.ID,
		Keyword:   r.Keyword,
		Category:  r.Category,
		Label:     r.Label,
		Language:  model.Language(r.Language),
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r learnedPatternRow) toModel() model.LearnedPattern {
	p := model.LearnedPattern{
		ID:                 r.ID,
		UserID:             r.UserID,
		DescriptionPattern: r.DescriptionPattern,
		CorrectedCategory:  r.CorrectedCategory,
		CorrectedLabel:     r.CorrectedLabel,
		Frequency:          r.Frequency,
		LastUsed:           r.LastUsed,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.OriginalCategory != nil {
		p.OriginalCategory = *r.OriginalCategory
	}
	if r.OriginalLabel != nil {
		p.OriginalLabel = *r.OriginalLabel
	}
	return p
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
