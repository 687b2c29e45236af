package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/autocat/internal/common"
	"github.com/Veraticus/autocat/internal/model"
)

const learnedColumns = `id, user_id, description_pattern, corrected_category, corrected_label,
	original_category, original_label, frequency, last_used, created_at, updated_at`

// UpsertLearnedPattern records a correction in a single conflict-resolving
// statement: a new (user, pattern) pair is inserted with frequency 1, an
// existing one has its frequency incremented in place.
func (s *SQLiteStorage) UpsertLearnedPattern(ctx context.Context, p *model.LearnedPattern) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := PrepareLearnedPattern(p); err != nil {
		return err
	}

	ts := now()
	if p.LastUsed.IsZero() {
		p.LastUsed = ts
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO learned_patterns (
				user_id, description_pattern, corrected_category, corrected_label,
				original_category, original_label, frequency, last_used, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?, ?)
			ON CONFLICT (user_id, description_pattern) DO UPDATE SET
				corrected_category = excluded.corrected_category,
				corrected_label = excluded.corrected_label,
				original_category = COALESCE(learned_patterns.original_category, excluded.original_category),
				original_label = COALESCE(learned_patterns.original_label, excluded.original_label),
				frequency = learned_patterns.frequency + 1,
				last_used = excluded.last_used,
				updated_at = excluded.updated_at
		`, p.UserID, p.DescriptionPattern, p.CorrectedCategory, p.CorrectedLabel,
			nullableString(p.OriginalCategory), nullableString(p.OriginalLabel),
			p.LastUsed, ts, ts)
		if err != nil {
			return fmt.Errorf("failed to upsert learned pattern: %w", translateError(err))
		}

		stored, err := scanLearnedPattern(tx.QueryRowContext(ctx,
			`SELECT `+learnedColumns+` FROM learned_patterns WHERE user_id = ? AND description_pattern = ?`,
			p.UserID, p.DescriptionPattern))
		if err != nil {
			return fmt.Errorf("failed to read back learned pattern: %w", translateError(err))
		}
		*p = *stored
		return nil
	})
}

// GetLearnedPatterns returns every pattern owned by userID, ordered by ID.
func (s *SQLiteStorage) GetLearnedPatterns(ctx context.Context, userID string) ([]model.LearnedPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+learnedColumns+` FROM learned_patterns WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query learned patterns: %w", translateError(err))
	}
	defer func() { _ = rows.Close() }()

	var patterns []model.LearnedPattern
	for rows.Next() {
		p, err := scanLearnedPattern(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan learned pattern: %w", err)
		}
		patterns = append(patterns, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating learned patterns: %w", err)
	}
	return patterns, nil
}

// GetLearnedPattern returns the pattern stored for (userID, descriptionPattern).
func (s *SQLiteStorage) GetLearnedPattern(ctx context.Context, userID, descriptionPattern string) (*model.LearnedPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	p, err := scanLearnedPattern(s.db.QueryRowContext(ctx,
		`SELECT `+learnedColumns+` FROM learned_patterns WHERE user_id = ? AND description_pattern = ?`,
		userID, descriptionPattern))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("learned pattern %q: %w", descriptionPattern, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learned pattern: %w", err)
	}
	return p, nil
}

func scanLearnedPattern(row rowScanner) (*model.LearnedPattern, error) {
	var p model.LearnedPattern
	var originalCategory, originalLabel sql.NullString
	if err := row.Scan(&p.ID, &p.UserID, &p.DescriptionPattern, &p.CorrectedCategory, &p.CorrectedLabel,
		&originalCategory, &originalLabel, &p.Frequency, &p.LastUsed, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.OriginalCategory = originalCategory.String
	p.OriginalLabel = originalLabel.String
	return &p, nil
}
