package sheets

import (
	"fmt"
	"log"
	"strings"

	"budget_engine/pkg/core/taxonomy"
	"budget_engine/pkg/core/workbook"
)

// CONSTRUCTABILITY sheet layout: category headers may sit anywhere in the
// first four columns; data rows under a header contribute until the next one.
const (
	constrHeaderColMax = 4
	constrColDesc      = 1
	constrColCost      = 6
)

// ConstructabilityParser parses the CONSTRUCTABILITY sheet: seven fixed
// categories of field-support cost.
type ConstructabilityParser struct{}

// NewConstructabilityParser creates the parser.
func NewConstructabilityParser() *ConstructabilityParser {
	return &ConstructabilityParser{}
}

// Parse scans for category boundaries by matching the controlled category
// list against the first four columns of every row.
func (p *ConstructabilityParser) Parse(grid [][]string) *ConstructabilityResult {
	result := &ConstructabilityResult{}

	var current *ConstructabilityCategoryResult
	for row := 0; row < len(grid); row++ {
		if cat, ok := p.matchHeader(grid, row); ok {
			result.Categories = append(result.Categories, ConstructabilityCategoryResult{
				Name:    cat.Name,
				WBSName: cat.WBSName,
			})
			current = &result.Categories[len(result.Categories)-1]
			continue
		}
		if current == nil {
			continue
		}

		cost := workbook.ParseCellValue(workbook.Cell(grid, row, constrColCost))
		if cost == 0 {
			continue
		}
		current.Items = append(current.Items, ConstructabilityItem{
			Description: strings.TrimSpace(workbook.Cell(grid, row, constrColDesc)),
			Cost:        cost,
			Row:         row,
		})
		current.Total += cost
		result.Total += cost
	}

	if len(result.Categories) == 0 {
		result.Errors = append(result.Errors, "no constructability categories found")
	} else if len(result.Categories) != len(taxonomy.ConstructabilityCategories) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("expected %d categories, found %d",
				len(taxonomy.ConstructabilityCategories), len(result.Categories)))
	}

	log.Printf("[ConstructabilityParser] SUMMARY: categories=%d total=%.2f",
		len(result.Categories), result.Total)
	return result
}

func (p *ConstructabilityParser) matchHeader(grid [][]string, row int) (taxonomy.ConstructabilityCategory, bool) {
	for col := 0; col < constrHeaderColMax; col++ {
		if cat, ok := taxonomy.MatchConstructabilityCategory(workbook.Cell(grid, row, col)); ok {
			return cat, true
		}
	}
	return taxonomy.ConstructabilityCategory{}, false
}
