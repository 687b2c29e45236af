package model

import "time"

// LearnedPattern is a per-user override recorded from a manual recategorization.
// At most one exists per (UserID, DescriptionPattern).
type LearnedPattern struct {
	LastUsed           time.Time `json:"last_used"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	UserID             string    `json:"user_id"`
	DescriptionPattern string    `json:"description_pattern"`
	CorrectedCategory  string    `json:"corrected_category"`
	CorrectedLabel     string    `json:"corrected_label"`
	OriginalCategory   string    `json:"original_category,omitempty"`
	OriginalLabel      string    `json:"original_label,omitempty"`
	ID                 int64     `json:"id"`
	Frequency          int       `json:"frequency"`
}

// Correction is a user's manual override of a classification.
type Correction struct {
	// Prior is what the engine guessed before the user intervened, if known.
	Prior             *Classification
	UserID            string
	Description       string
	CorrectedCategory string
	CorrectedLabel    string
}
