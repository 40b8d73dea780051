package sheets

import (
	"math"
	"testing"
)

func constructabilityGrid() [][]string {
	row := func(cells ...string) []string { return cells }
	return [][]string{
		row("CONSTRUCTABILITY REVIEW"),
		row(""),
		row("PRE-JOB"),
		row("", "Site trailers", "", "", "", "", "14000"),
		row("", "Fencing & signage", "", "", "", "", "3500"),
		row("CRANES & RIGGING"),
		row("", "Crane pads", "", "", "", "", "9000"),
		row("SCAFFOLDING"),
		row("", "System scaffold rental", "", "", "", "", "22000"),
		row("WEATHER PROTECTION"),
		row("ACCESS & LOGISTICS"),
		row("", "Haul road maintenance", "", "", "", "", "5000"),
		row("TEMPORARY POWER"),
		row("", "Generators", "", "", "", "", "7500"),
		row("SAFETY & ENVIRONMENTAL"),
		row("", "SWPPP controls", "", "", "", "", "2000"),
	}
}

func TestConstructabilityCategories(t *testing.T) {
	result := NewConstructabilityParser().Parse(constructabilityGrid())
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Categories) != 7 {
		t.Fatalf("expected 7 categories, got %d", len(result.Categories))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("full category set must not warn: %v", result.Warnings)
	}

	preJob := result.Categories[0]
	if preJob.Name != "PRE-JOB" || preJob.WBSName != "TEMPORARY FACILITIES" {
		t.Errorf("PRE-JOB mapping = %s/%s", preJob.Name, preJob.WBSName)
	}
	if math.Abs(preJob.Total-17500) > 1e-9 {
		t.Errorf("PRE-JOB total = %.2f, want 17500", preJob.Total)
	}
	if math.Abs(result.Total-63000) > 1e-9 {
		t.Errorf("sheet total = %.2f, want 63000", result.Total)
	}
}

func TestConstructabilityEmptyCategoryKept(t *testing.T) {
	result := NewConstructabilityParser().Parse(constructabilityGrid())
	for _, cat := range result.Categories {
		if cat.Name == "WEATHER PROTECTION" {
			if len(cat.Items) != 0 || cat.Total != 0 {
				t.Errorf("WEATHER PROTECTION = %+v", cat)
			}
			return
		}
	}
	t.Error("WEATHER PROTECTION category missing")
}

func TestConstructabilityOffsetHeader(t *testing.T) {
	// Headers are matched anywhere in the first four columns.
	grid := [][]string{
		{"", "", "SCAFFOLDING"},
		{"", "Tube and clamp", "", "", "", "", "4000"},
	}

	result := NewConstructabilityParser().Parse(grid)
	if len(result.Categories) != 1 || result.Categories[0].Name != "SCAFFOLDING" {
		t.Fatalf("categories = %+v", result.Categories)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("partial category set must warn: %v", result.Warnings)
	}
}

func TestConstructabilityNoHeaders(t *testing.T) {
	grid := [][]string{
		{"NOTES"},
		{"", "Stray cost row", "", "", "", "", "1200"},
	}

	result := NewConstructabilityParser().Parse(grid)
	if len(result.Errors) != 1 {
		t.Errorf("errors = %v", result.Errors)
	}
	if result.Total != 0 {
		t.Errorf("cost outside any category must not count: %.2f", result.Total)
	}
}
