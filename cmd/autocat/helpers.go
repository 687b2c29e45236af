package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/autocat/internal/common"
	"github.com/Veraticus/autocat/internal/config"
	"github.com/Veraticus/autocat/internal/engine"
	"github.com/Veraticus/autocat/internal/service"
	"github.com/Veraticus/autocat/internal/storage"
	"github.com/Veraticus/autocat/internal/storage/gormstore"
)

// openStorage opens the configured rule store without migrating it.
func openStorage(cfg *config.Config) (service.Storage, error) {
	order, err := cfg.CategoryOrder()
	if err != nil {
		return nil, err
	}

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		opts := []gormstore.Option{gormstore.WithCategoryOrder(order)}
		if cfg.Database.LogSQL {
			opts = append(opts, gormstore.WithSQLLogging())
		}
		return gormstore.NewPostgres(cfg.Database.DSN, opts...)
	default:
		return storage.NewSQLiteStorage(cfg.Database.Path, storage.WithCategoryOrder(order))
	}
}

// initStorage opens the configured store and brings its schema up to date.
func initStorage(ctx context.Context) (service.Storage, error) {
	store, err := openStorage(appConfig)
	if err != nil {
		return nil, common.NewUserError("could not open the rule store", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func newEngine(store service.RuleStore) (*engine.Engine, error) {
	cfg, err := appConfig.EngineOptions()
	if err != nil {
		return nil, err
	}
	return engine.New(store, cfg)
}

func parseRuleID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewUserError(fmt.Sprintf("invalid rule ID %q", arg), err)
	}
	return id, nil
}

// joinDescription lets descriptions be passed unquoted.
func joinDescription(args []string) string {
	return strings.Join(args, " ")
}
