// Package report renders an import run as a human-readable Markdown
// document, with an HTML rendering for the dashboard collaborator.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"budget_engine/pkg/models"
)

// RenderMarkdown builds the validation report for one import run.
func RenderMarkdown(result *models.ImportResult) string {
	var b strings.Builder

	b.WriteString("# Budget Import Report\n\n")
	fmt.Fprintf(&b, "Run `%s`", result.RunID)
	if result.ProjectID != "" {
		fmt.Fprintf(&b, " for project `%s`", result.ProjectID)
	}
	b.WriteString("\n\n")

	b.WriteString("## Totals\n\n")
	b.WriteString("| Bucket | Value |\n|---|---|\n")
	t := result.Totals
	fmt.Fprintf(&b, "| Labor | %.2f |\n", t.Labor)
	fmt.Fprintf(&b, "| Material | %.2f |\n", t.Material)
	fmt.Fprintf(&b, "| Equipment | %.2f |\n", t.Equipment)
	fmt.Fprintf(&b, "| Subcontract | %.2f |\n", t.Subcontract)
	fmt.Fprintf(&b, "| Other | %.2f |\n", t.Other)
	fmt.Fprintf(&b, "| Grand total | %.2f |\n", t.GrandTotal)
	fmt.Fprintf(&b, "| Manhours | %.0f |\n\n", t.TotalManhours)

	if result.Validation != nil {
		b.WriteString("## Validation\n\n")
		if result.Validation.IsValid {
			b.WriteString("Workbook is **valid**.\n\n")
		} else {
			b.WriteString("Workbook is **not valid**.\n\n")
		}

		for _, sheet := range result.Validation.Sheets {
			status := "valid"
			if !sheet.Valid {
				status = "INVALID"
			}
			fmt.Fprintf(&b, "### %s (%s)\n\n", sheet.Sheet, status)

			if len(sheet.Comparisons) > 0 {
				b.WriteString("| Check | Budget | Sheet | Diff | Diff % |\n|---|---|---|---|---|\n")
				for _, c := range sheet.Comparisons {
					fmt.Fprintf(&b, "| %s | %.2f | %.2f | %.2f | %.2f%% |\n",
						c.Label, c.BudgetValue, c.SheetValue, c.Difference, c.PercentDiff)
				}
				b.WriteString("\n")
			}
			writeList(&b, "Errors", sheet.Errors)
			writeList(&b, "Warnings", sheet.Warnings)
		}

		writeList(&b, "Workbook errors", result.Validation.Errors)
		writeList(&b, "Workbook warnings", result.Validation.Warnings)
	}

	return b.String()
}

func writeList(b *strings.Builder, title string, entries []string) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s**\n\n", title)
	for _, e := range entries {
		fmt.Fprintf(b, "- %s\n", e)
	}
	b.WriteString("\n")
}

// RenderHTML converts the Markdown report to HTML.
func RenderHTML(result *models.ImportResult) (string, error) {
	md := RenderMarkdown(result)
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}
