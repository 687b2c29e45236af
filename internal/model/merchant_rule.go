// Package model defines the core data structures for the categorization engine.
package model

import "time"

// MerchantRule maps a named merchant, and its spelling variants, to a classification.
type MerchantRule struct {
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	Pattern           string    `json:"pattern"`
	Category          string    `json:"category"`
	Label             string    `json:"label"`
	AlternatePatterns []string  `json:"alternate_patterns,omitempty"`
	ID                int64     `json:"id"`
	IsActive          bool      `json:"is_active"`
}
