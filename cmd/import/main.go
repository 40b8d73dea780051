package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"budget_engine/pkg/core/pipeline"
	"budget_engine/pkg/core/report"
	"budget_engine/pkg/core/store"
	"budget_engine/pkg/core/taxonomy"
	"budget_engine/pkg/core/validate"
	"budget_engine/pkg/core/workbook"
)

// Config is the engine configuration file.
type Config struct {
	Validation       validate.Config `yaml:"validation"`
	ParentGroupsFile string          `yaml:"parent_groups_file"`
}

func main() {
	filePath := flag.String("file", "", "Path to the budget workbook (.xlsx)")
	projectID := flag.String("project", "", "Project id (uuid); enables persistence and allocations")
	configPath := flag.String("config", "config/engine.yaml", "Path to the engine config")
	reportPath := flag.String("report", "", "Write the Markdown validation report to this path")
	htmlPath := flag.String("html", "", "Write the HTML validation report to this path")
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: import -file <workbook.xlsx> [-project <uuid>]")
		os.Exit(1)
	}

	// Load environment variables
	godotenv.Load()

	cfg := Config{Validation: validate.DefaultConfig()}
	if data, err := os.ReadFile(*configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "invalid config %s: %v\n", *configPath, err)
			os.Exit(1)
		}
	}

	groups := taxonomy.NewParentGroups()
	if cfg.ParentGroupsFile != "" {
		loaded, err := taxonomy.LoadParentGroups(cfg.ParentGroupsFile)
		if err != nil {
			fmt.Printf("[WARNING] Failed to load parent groups: %v\n", err)
			fmt.Println("  Falling back to built-in grouping")
		} else {
			groups = loaded
		}
	}

	wb, err := workbook.OpenXLSX(*filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open %s: %v\n", *filePath, err)
		os.Exit(1)
	}
	defer wb.Close()

	ctx := context.Background()
	orchestrator := pipeline.NewOrchestrator(cfg.Validation)

	if *projectID != "" {
		if err := store.InitDB(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "database init failed: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		orchestrator.SetRepository(store.NewBudgetRepo())
	}

	result, err := orchestrator.Run(ctx, wb, *projectID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d disciplines, grand total %.2f\n", len(result.Disciplines), result.Totals.GrandTotal)
	for _, disc := range result.Disciplines {
		fmt.Printf("  %-24s group=%s total=%.2f\n",
			disc.Name, groups.Parent(disc.Name), disc.Categories.DisciplineTotals.Value)
	}

	if result.Validation != nil && !result.Validation.IsValid {
		fmt.Println("Workbook is NOT valid:")
		for _, e := range result.Errors {
			fmt.Printf("  ERROR: %s\n", e)
		}
	}
	for _, w := range result.Warnings {
		fmt.Printf("  WARNING: %s\n", w)
	}

	if *reportPath != "" {
		if err := os.WriteFile(*reportPath, []byte(report.RenderMarkdown(result)), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Report written to %s\n", *reportPath)
	}
	if *htmlPath != "" {
		html, err := report.RenderHTML(result)
		if err == nil {
			err = os.WriteFile(*htmlPath, []byte(html), 0o644)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to write html report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("HTML report written to %s\n", *htmlPath)
	}
}
