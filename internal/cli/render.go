package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/autocat/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// FormatClassification renders a classification on one line.
func FormatClassification(c model.Classification) string {
	if !c.IsCategorized() {
		return WarningStyle.Render("Uncategorized")
	}
	target := c.Category
	if c.Label != "" {
		target += " / " + c.Label
	}
	return fmt.Sprintf("%s %s",
		SuccessStyle.Render(target),
		SubtleStyle.Render(fmt.Sprintf("(%s, confidence %d)", c.Source, c.Confidence)))
}

// table lays out rows in padded columns under a bold header.
func table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	renderRow := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = TableCellStyle.Width(widths[i] + 2).Render(cell)
		}
		return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}

	lines := []string{renderRow(headers, TableHeaderStyle)}
	for _, row := range rows {
		lines = append(lines, renderRow(row, lipgloss.NewStyle()))
	}
	return strings.Join(lines, "\n")
}

// RenderResults writes a table of classified transactions.
func RenderResults(w io.Writer, results []model.TransactionResult) error {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		c := r.Classification
		source, confidence := "-", "0"
		if c.IsCategorized() {
			source, confidence = string(c.Source), strconv.Itoa(c.Confidence)
		}
		rows = append(rows, []string{
			r.Transaction.Date.Format("2006-01-02"),
			r.Transaction.Description,
			fmt.Sprintf("%.2f", r.Transaction.Amount),
			orDash(c.Category),
			orDash(c.Label),
			source,
			confidence,
		})
	}
	_, err := fmt.Fprintln(w, table(
		[]string{"Date", "Description", "Amount", "Category", "Label", "Source", "Confidence"}, rows))
	return err
}

// SummarizeResults counts results per source.
func SummarizeResults(results []model.TransactionResult) map[model.Source]int {
	counts := make(map[model.Source]int)
	for _, r := range results {
		counts[r.Classification.Source]++
	}
	return counts
}

// RenderSummary renders per-tier counts in a box.
func RenderSummary(results []model.TransactionResult) string {
	counts := SummarizeResults(results)
	lines := []string{
		fmt.Sprintf("Transactions:  %s", BoldStyle.Render(strconv.Itoa(len(results)))),
		fmt.Sprintf("User history:  %d", counts[model.SourceUserHistory]),
		fmt.Sprintf("Merchant:      %d", counts[model.SourceMerchant]),
		fmt.Sprintf("Keyword:       %d", counts[model.SourceKeyword]),
		fmt.Sprintf("Uncategorized: %d", counts[model.SourceNone]),
	}
	return RenderBox("Classification summary", strings.Join(lines, "\n"))
}

// RenderMerchantRules writes a table of merchant rules.
func RenderMerchantRules(w io.Writer, rules []model.MerchantRule) error {
	rows := make([][]string, 0, len(rules))
	for _, r := range rules {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Pattern,
			orDash(strings.Join(r.AlternatePatterns, ", ")),
			r.Category,
			orDash(r.Label),
			activeMark(r.IsActive),
		})
	}
	_, err := fmt.Fprintln(w, table([]string{"ID", "Pattern", "Alternates", "Category", "Label", "Active"}, rows))
	return err
}

// RenderKeywordRules writes a table of keyword rules.
func RenderKeywordRules(w io.Writer, rules []model.KeywordRule) error {
	rows := make([][]string, 0, len(rules))
	for _, r := range rules {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Keyword,
			r.Category,
			orDash(r.Label),
			string(r.Language),
			activeMark(r.IsActive),
		})
	}
	_, err := fmt.Fprintln(w, table([]string{"ID", "Keyword", "Category", "Label", "Language", "Active"}, rows))
	return err
}

// RenderLearnedPatterns writes a table of a user's learned patterns.
func RenderLearnedPatterns(w io.Writer, patterns []model.LearnedPattern) error {
	rows := make([][]string, 0, len(patterns))
	for _, p := range patterns {
		original := p.OriginalCategory
		if p.OriginalLabel != "" {
			original += " / " + p.OriginalLabel
		}
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.DescriptionPattern,
			p.CorrectedCategory,
			orDash(p.CorrectedLabel),
			orDash(original),
			strconv.Itoa(p.Frequency),
			p.LastUsed.Format("2006-01-02 15:04"),
		})
	}
	_, err := fmt.Fprintln(w, table(
		[]string{"ID", "Pattern", "Category", "Label", "Was", "Frequency", "Last used"}, rows))
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func activeMark(active bool) string {
	if active {
		return SuccessStyle.Render(SuccessIcon)
	}
	return SubtleStyle.Render(ErrorIcon)
}
