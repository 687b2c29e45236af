package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/autocat/internal/cli"
	"github.com/Veraticus/autocat/internal/common"
	"github.com/Veraticus/autocat/internal/model"
	"github.com/Veraticus/autocat/internal/ofx"
	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <description>",
		Short: "Classify a single transaction description",
		Long: `Run a raw bank description through the tiers and print the result.

With --user, that user's learned corrections are consulted first.`,
		Example: `  autocat classify --user alice "HYDRO OTTAWA PAYMENT"
  autocat classify TIMHORT 123 MAIN ST`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			eng, err := newEngine(store)
			if err != nil {
				return err
			}

			result, err := eng.TryClassify(cmd.Context(), userID, joinDescription(args))
			if err != nil {
				if errors.Is(err, common.ErrRuleStoreUnavailable) {
					fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning("Rule store unavailable; treating as uncategorized"))
				} else {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatClassification(result))
			return nil
		},
	}

	cmd.Flags().String("user", "", "User whose corrections apply")

	return cmd
}

func statementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statement <file.ofx>",
		Short: "Classify every transaction in an OFX/QFX statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")
			quiet, _ := cmd.Flags().GetBool("quiet")
			out := cmd.OutOrStdout()

			f, err := os.Open(args[0])
			if err != nil {
				return common.NewUserError("could not open statement", err)
			}
			defer func() { _ = f.Close() }()

			parser := ofx.NewParser(userID)
			accounts, err := parser.GetAccounts(cmd.Context(), f)
			if err != nil {
				return err
			}
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				return fmt.Errorf("failed to rewind statement: %w", err)
			}
			txns, err := parser.ParseFile(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s: %d transactions across accounts %s",
				filepath.Base(args[0]), len(txns), strings.Join(accounts, ", "))))
			if len(txns) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("Statement has no transactions"))
				return nil
			}

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			eng, err := newEngine(store)
			if err != nil {
				return err
			}

			interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx, stop := interrupts.HandleInterrupts(cmd.Context(), "Transactions classified so far are shown below.")
			defer stop()

			const chunk = 100
			var progress *cli.Progress
			if !quiet {
				progress = cli.NewProgress(cmd.ErrOrStderr(), len(txns), "Classifying transactions...")
			}

			results := make([]model.TransactionResult, 0, len(txns))
			for start := 0; start < len(txns); start += chunk {
				if ctx.Err() != nil {
					break
				}
				end := min(start+chunk, len(txns))
				results = append(results, eng.ClassifyBatch(ctx, txns[start:end])...)
				if progress != nil {
					progress.Add(end - start)
				}
			}
			if progress != nil && !interrupts.WasInterrupted() {
				progress.Finish()
			}

			if err := cli.RenderResults(out, results); err != nil {
				return err
			}
			fmt.Fprintln(out, cli.RenderSummary(results))
			return nil
		},
	}

	cmd.Flags().String("user", "", "User whose corrections apply")
	cmd.Flags().BoolP("quiet", "q", false, "Hide the progress bar")

	return cmd
}
