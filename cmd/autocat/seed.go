package main

import (
	"fmt"

	"github.com/Veraticus/autocat/internal/classification"
	"github.com/Veraticus/autocat/internal/cli"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load merchant and keyword rules into the store",
		Long: `Load the built-in default rules, or the rules in a YAML file, into the rule store.
Rules that already exist are skipped, so seeding is safe to repeat.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, _ := cmd.Flags().GetString("file")

			rules := classification.Defaults()
			if file != "" {
				var err error
				if rules, err = classification.LoadRuleFile(file); err != nil {
					return err
				}
			}

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			stats, err := classification.Seed(cmd.Context(), store, rules)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Seeded %d merchant rules and %d keyword rules (%d already present)",
				stats.MerchantsCreated, stats.KeywordsCreated, stats.MerchantsSkipped+stats.KeywordsSkipped)))
			return nil
		},
	}

	cmd.Flags().String("file", "", "YAML rule file (default: built-in rules)")

	return cmd
}
