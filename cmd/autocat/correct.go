package main

import (
	"fmt"

	"github.com/Veraticus/autocat/internal/cli"
	"github.com/Veraticus/autocat/internal/model"
	"github.com/spf13/cobra"
)

func correctCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "correct <description>",
		Short: "Record a user's recategorization of a transaction",
		Long: `Record that a user moved a transaction to a different category.

The engine's current guess is stored as the original classification, and
future descriptions containing the learned pattern follow the correction.`,
		Example: `  autocat correct --user alice --category Utilities-Custom --label "My Hydro" HYDRO OTTAWA PAYMENT`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")
			category, _ := cmd.Flags().GetString("category")
			label, _ := cmd.Flags().GetString("label")
			description := joinDescription(args)

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			eng, err := newEngine(store)
			if err != nil {
				return err
			}

			prior := eng.Classify(cmd.Context(), userID, description)
			learned, err := eng.RecordCorrection(cmd.Context(), model.Correction{
				UserID:            userID,
				Description:       description,
				CorrectedCategory: category,
				CorrectedLabel:    label,
				Prior:             &prior,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Learned %q for %s (seen %d times, granularity %s)",
				learned.DescriptionPattern, userID, learned.Frequency, eng.Granularity())))
			fmt.Fprintln(out, "Was: "+cli.FormatClassification(prior))
			fmt.Fprintln(out, "Now: "+cli.FormatClassification(eng.Classify(cmd.Context(), userID, description)))
			return nil
		},
	}

	cmd.Flags().String("user", "", "User making the correction")
	cmd.Flags().String("category", "", "Corrected category")
	cmd.Flags().String("label", "", "Corrected label")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func learnedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learned",
		Short: "List a user's learned patterns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, _ := cmd.Flags().GetString("user")

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			patterns, err := store.GetLearnedPatterns(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if len(patterns) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No learned patterns for "+userID))
				return nil
			}
			return cli.RenderLearnedPatterns(cmd.OutOrStdout(), patterns)
		},
	}

	cmd.Flags().String("user", "", "User to list")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
