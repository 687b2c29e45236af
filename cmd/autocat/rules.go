package main

import (
	"fmt"

	"github.com/Veraticus/autocat/internal/cli"
	"github.com/Veraticus/autocat/internal/model"
	"github.com/Veraticus/autocat/internal/service"
	"github.com/spf13/cobra"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage merchant and keyword rules",
		Long: `View, add, and (de)activate the admin-curated rules.

Deactivated rules stop matching immediately for new engine instances but
stay in the store for audit.`,
	}

	cmd.AddCommand(merchantsCmd())
	cmd.AddCommand(keywordsCmd())

	return cmd
}

func merchantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "merchants",
		Aliases: []string{"merchant"},
		Short:   "Manage merchant rules",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List merchant rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, _ := cmd.Flags().GetBool("all")
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rules, err := store.ListMerchantRules(cmd.Context(), all)
			if err != nil {
				return err
			}
			if len(rules) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No merchant rules yet. Run 'autocat seed' to load the defaults."))
				return nil
			}
			return cli.RenderMerchantRules(cmd.OutOrStdout(), rules)
		},
	}
	list.Flags().Bool("all", false, "Include inactive rules")

	add := &cobra.Command{
		Use:   "add <pattern>",
		Short: "Add a merchant rule",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			label, _ := cmd.Flags().GetString("label")
			alternates, _ := cmd.Flags().GetStringSlice("alt")

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rule := &model.MerchantRule{
				Pattern:           joinDescription(args),
				AlternatePatterns: alternates,
				Category:          category,
				Label:             label,
				IsActive:          true,
			}
			if err := store.CreateMerchantRule(cmd.Context(), rule); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created merchant rule %d: %s → %s", rule.ID, rule.Pattern, rule.Category)))
			return nil
		},
	}
	add.Flags().String("category", "", "Target category")
	add.Flags().String("label", "", "Target label")
	add.Flags().StringSlice("alt", nil, "Alternate spelling (repeatable)")
	_ = add.MarkFlagRequired("category")

	cmd.AddCommand(list, add,
		setActiveCmd("activate", true, func(cmd *cobra.Command, id int64, active bool) error {
			return withStore(cmd, func(s service.Storage) error { return s.SetMerchantRuleActive(cmd.Context(), id, active) })
		}),
		setActiveCmd("deactivate", false, func(cmd *cobra.Command, id int64, active bool) error {
			return withStore(cmd, func(s service.Storage) error { return s.SetMerchantRuleActive(cmd.Context(), id, active) })
		}),
	)
	return cmd
}

func keywordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keywords",
		Aliases: []string{"keyword"},
		Short:   "Manage keyword rules",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List keyword rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, _ := cmd.Flags().GetBool("all")
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rules, err := store.ListKeywordRules(cmd.Context(), all)
			if err != nil {
				return err
			}
			if len(rules) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No keyword rules yet. Run 'autocat seed' to load the defaults."))
				return nil
			}
			return cli.RenderKeywordRules(cmd.OutOrStdout(), rules)
		},
	}
	list.Flags().Bool("all", false, "Include inactive rules")

	add := &cobra.Command{
		Use:   "add <keyword>",
		Short: "Add a keyword rule",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			label, _ := cmd.Flags().GetString("label")
			language, _ := cmd.Flags().GetString("language")

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rule := &model.KeywordRule{
				Keyword:  joinDescription(args),
				Category: category,
				Label:    label,
				Language: model.Language(language),
				IsActive: true,
			}
			if err := store.CreateKeywordRule(cmd.Context(), rule); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created keyword rule %d: %s → %s", rule.ID, rule.Keyword, rule.Category)))
			return nil
		},
	}
	add.Flags().String("category", "", "Target category (must be in engine.category_order)")
	add.Flags().String("label", "", "Target label")
	add.Flags().String("language", "both", "Language tag (en, fr, both)")
	_ = add.MarkFlagRequired("category")

	cmd.AddCommand(list, add,
		setActiveCmd("activate", true, func(cmd *cobra.Command, id int64, active bool) error {
			return withStore(cmd, func(s service.Storage) error { return s.SetKeywordRuleActive(cmd.Context(), id, active) })
		}),
		setActiveCmd("deactivate", false, func(cmd *cobra.Command, id int64, active bool) error {
			return withStore(cmd, func(s service.Storage) error { return s.SetKeywordRuleActive(cmd.Context(), id, active) })
		}),
	)
	return cmd
}

func setActiveCmd(use string, active bool, apply func(cmd *cobra.Command, id int64, active bool) error) *cobra.Command {
	verb := "Deactivate"
	if active {
		verb = "Activate"
	}
	return &cobra.Command{
		Use:   use + " <id>",
		Short: verb + " a rule by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRuleID(args[0])
			if err != nil {
				return err
			}
			if err := apply(cmd, id, active); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%sd rule %d", verb, id)))
			return nil
		},
	}
}

func withStore(cmd *cobra.Command, fn func(service.Storage) error) error {
	store, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}
