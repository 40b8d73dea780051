package sheets

import (
	"fmt"
	"log"
	"strings"

	"budget_engine/pkg/core/taxonomy"
	"budget_engine/pkg/core/workbook"
)

// DIRECTS sheet layout: disciplines sit side-by-side in repeating 10-column
// sections. Within a section, offsets are relative to its base column.
const (
	directsSectionWidth  = 10
	directsRowName       = 1 // Discipline name row
	directsRowFirstCraft = 6 // First of the 39 classification rows
	directsOffLabel      = 0
	directsOffManhours   = 2
	directsOffCost       = 6
)

// DirectsParser parses the DIRECTS sheet: per-discipline craft manhours and
// cost, one horizontal section per discipline.
type DirectsParser struct{}

// NewDirectsParser creates the parser.
func NewDirectsParser() *DirectsParser {
	return &DirectsParser{}
}

// Parse walks sections left to right until a section has no discipline name.
func (p *DirectsParser) Parse(grid [][]string) *DirectsResult {
	result := &DirectsResult{}

	for section := 0; ; section++ {
		base := section * directsSectionWidth
		name := strings.ToUpper(strings.TrimSpace(workbook.Cell(grid, directsRowName, base)))
		if name == "" {
			break
		}
		disc := p.parseSection(grid, base, name, result)
		result.Disciplines = append(result.Disciplines, disc)
	}

	if len(result.Disciplines) == 0 {
		result.Errors = append(result.Errors, "no discipline sections found")
	}

	log.Printf("[DirectsParser] SUMMARY: disciplines=%d", len(result.Disciplines))
	return result
}

// parseSection reads the 39 classification rows of one section. A blank
// label cell falls back to the positional classification for that row; a
// label that matches nothing still contributes its value, with a warning.
func (p *DirectsParser) parseSection(grid [][]string, base int, name string, result *DirectsResult) DirectsDiscipline {
	disc := DirectsDiscipline{Name: name}

	for i := range taxonomy.DirectClassifications {
		row := directsRowFirstCraft + i
		manhours := workbook.ParseCellValue(workbook.Cell(grid, row, base+directsOffManhours))
		cost := workbook.ParseCellValue(workbook.Cell(grid, row, base+directsOffCost))
		if manhours == 0 && cost == 0 {
			continue
		}

		line := ClassificationLine{
			Manhours: manhours,
			Cost:     cost,
			Row:      row,
		}
		label := strings.TrimSpace(workbook.Cell(grid, row, base+directsOffLabel))
		if craft, code, ok := taxonomy.NormalizeCraft(label); ok {
			line.Classification = craft
			line.Code = code
		} else if label == "" {
			positional, _ := taxonomy.DirectClassificationAt(i)
			line.Classification = positional.Name
			line.Code = positional.Code
		} else {
			line.Classification = label
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unknown classification: %s (%s)", label, name))
		}

		disc.Classifications = append(disc.Classifications, line)
		disc.TotalManhours += manhours
		disc.TotalCost += cost
	}

	if len(disc.Classifications) == 0 {
		result.Warnings = append(result.Warnings, "discipline "+name+" has no line items")
	}
	return disc
}
