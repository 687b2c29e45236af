// Package testutil provides seeded rule stores for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/autocat/internal/classification"
	"github.com/Veraticus/autocat/internal/model"
	"github.com/Veraticus/autocat/internal/storage"
)

// TestDB is a migrated SQLite rule store that is closed when the test ends.
type TestDB struct {
	*storage.SQLiteStorage
	t *testing.T
}

// SetupTestDB creates an empty, migrated store in the test's temp dir.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "autocat.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &TestDB{SQLiteStorage: store, t: t}
}

// SetupSeededTestDB creates a store holding the default rule content.
func SetupSeededTestDB(t *testing.T) *TestDB {
	t.Helper()
	db := SetupTestDB(t)
	db.Seed(classification.Defaults())
	return db
}

// Seed loads rf into the store or fails the test.
func (db *TestDB) Seed(rf classification.RuleFile) {
	db.t.Helper()
	if _, err := classification.Seed(context.Background(), db, rf); err != nil {
		db.t.Fatalf("failed to seed rules: %v", err)
	}
}

// MustCreateMerchant stores an active merchant rule and returns it with its ID.
func (db *TestDB) MustCreateMerchant(pattern, category, label string, alternates ...string) model.MerchantRule {
	db.t.Helper()
	rule := model.MerchantRule{
		Pattern:           pattern,
		AlternatePatterns: alternates,
		Category:          category,
		Label:             label,
		IsActive:          true,
	}
	if err := db.CreateMerchantRule(context.Background(), &rule); err != nil {
		db.t.Fatalf("failed to create merchant rule %q: %v", pattern, err)
	}
	return rule
}

// MustCreateKeyword stores an active keyword rule and returns it with its ID.
func (db *TestDB) MustCreateKeyword(keyword, category, label string) model.KeywordRule {
	db.t.Helper()
	rule := model.KeywordRule{
		Keyword:  keyword,
		Category: category,
		Label:    label,
		IsActive: true,
	}
	if err := db.CreateKeywordRule(context.Background(), &rule); err != nil {
		db.t.Fatalf("failed to create keyword rule %q: %v", keyword, err)
	}
	return rule
}
