package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/autocat/internal/cli"
	"github.com/Veraticus/autocat/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the rule store schema to the latest version.

SQLite databases use versioned migrations; Postgres tables are created
and updated from the gorm models.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current schema version without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	store, err := openStorage(appConfig)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	sqliteStore, isSQLite := store.(*storage.SQLiteStorage)

	if status {
		if !isSQLite {
			fmt.Fprintln(out, cli.FormatInfo("Schema is managed by gorm auto-migration for "+appConfig.Database.Driver))
			return nil
		}
		version, err := sqliteStore.SchemaVersion(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, cli.RenderBox("Database migration status", fmt.Sprintf(
			"Database: %s\nCurrent version: %d\nLatest version: %d",
			sqliteStore.Path(), version, storage.ExpectedSchemaVersion)))
		return nil
	}

	slog.Info("Running database migrations", "driver", appConfig.Database.Driver)
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess("Database migrations completed successfully"))
	return nil
}
