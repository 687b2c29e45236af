// Package gormstore is the gorm-backed rule store used for Postgres deployments.
// Any gorm dialector works; the tests run it against SQLite.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/autocat/internal/common"
	"github.com/Veraticus/autocat/internal/model"
	"github.com/Veraticus/autocat/internal/service"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store implements service.Storage on top of gorm.
type Store struct {
	db    *gorm.DB
	order model.CategoryOrder
}

var _ service.Storage = (*Store)(nil)

// Option configures a Store.
type Option func(*options)

type options struct {
	order    model.CategoryOrder
	logLevel logger.LogLevel
}

// WithCategoryOrder sets the order keyword rule categories are validated against.
func WithCategoryOrder(order model.CategoryOrder) Option {
	return func(o *options) {
		o.order = order
	}
}

// WithSQLLogging turns on gorm's statement logger.
func WithSQLLogging() Option {
	return func(o *options) {
		o.logLevel = logger.Info
	}
}

// NewPostgres opens a store against a Postgres DSN.
func NewPostgres(dsn string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("%w: postgres DSN is required", common.ErrMissingConfig)
	}
	return Open(postgres.Open(dsn), opts...)
}

// NewSQLite opens a store against a SQLite file through gorm.
func NewSQLite(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: sqlite path is required", common.ErrMissingConfig)
	}
	return Open(sqlite.Open(path+"?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL"), opts...)
}

// Open wraps an arbitrary gorm dialector.
func Open(dialector gorm.Dialector, opts ...Option) (*Store, error) {
	o := options{order: model.DefaultCategoryOrder(), logLevel: logger.Silent}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(o.logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if db.Dialector.Name() == "sqlite" {
		// SQLite allows one writer; queue callers on the pool instead of failing with SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	}

	return &Store{db: db, order: o.order}, nil
}

// Migrate creates or updates the rule tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(
		&merchantRuleRow{},
		&merchantAliasRow{},
		&keywordRuleRow{},
		&learnedPatternRow{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translateError(err error) error {
	var sqliteErr sqlite3.Error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", common.ErrDuplicateEntry, err)
	case errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique:
		return fmt.Errorf("%w: %w", common.ErrDuplicateEntry, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", common.ErrNotFound, err)
	}
	return err
}

func requireRowsAffected(tx *gorm.DB, what string, id int64) error {
	if tx.Error != nil {
		return fmt.Errorf("update %s %d: %w", what, id, translateError(tx.Error))
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%s %d: %w", what, id, common.ErrNotFound)
	}
	return nil
}
