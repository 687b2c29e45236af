package gormstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/autocat/internal/model"
	"github.com/Veraticus/autocat/internal/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertLearnedPattern inserts the pattern or bumps the frequency of the
// existing (user, pattern) row in one ON CONFLICT statement.
func (s *Store) UpsertLearnedPattern(ctx context.Context, p *model.LearnedPattern) error {
	if err := storage.PrepareLearnedPattern(p); err != nil {
		return err
	}

	ts := time.Now().UTC()
	if p.LastUsed.IsZero() {
		p.LastUsed = ts
	}
	row := learnedPatternRow{
		UserID:             p.UserID,
		DescriptionPattern: p.DescriptionPattern,
		CorrectedCategory:  p.CorrectedCategory,
		CorrectedLabel:     p.CorrectedLabel,
		OriginalCategory:   optional(p.OriginalCategory),
		OriginalLabel:      optional(p.OriginalLabel),
		Frequency:          1,
		LastUsed:           p.LastUsed,
		CreatedAt:          ts,
		UpdatedAt:          ts,
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "description_pattern"}},
			DoUpdates: clause.Assignments(map[string]any{
				"corrected_category": gorm.Expr("excluded.corrected_category"),
				"corrected_label":    gorm.Expr("excluded.corrected_label"),
				"original_category":  gorm.Expr("COALESCE(learned_patterns.original_category, excluded.original_category)"),
				"original_label":     gorm.Expr("COALESCE(learned_patterns.original_label, excluded.original_label)"),
				"frequency":          gorm.Expr("learned_patterns.frequency + 1"),
				"last_used":          gorm.Expr("excluded.last_used"),
				"updated_at":         gorm.Expr("excluded.updated_at"),
			}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("upsert learned pattern: %w", translateError(err))
		}

		var stored learnedPatternRow
		if err := tx.Where("user_id = ? AND description_pattern = ?", p.UserID, p.DescriptionPattern).
			First(&stored).Error; err != nil {
			return fmt.Errorf("read back learned pattern: %w", translateError(err))
		}
		*p = stored.toModel()
		return nil
	})
}

// GetLearnedPatterns returns userID's patterns ordered by ID.
func (s *Store) GetLearnedPatterns(ctx context.Context, userID string) ([]model.LearnedPattern, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: userID", storage.ErrEmptyString)
	}
	var rows []learnedPatternRow
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list learned patterns: %w", err)
	}
	patterns := make([]model.LearnedPattern, len(rows))
	for i, row := range rows {
		patterns[i] = row.toModel()
	}
	return patterns, nil
}
