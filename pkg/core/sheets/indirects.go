package sheets

import (
	"log"
	"strings"

	"budget_engine/pkg/core/taxonomy"
	"budget_engine/pkg/core/workbook"
)

// INDIRECTS sheet layout: a fixed row range of named supervision roles.
// Supervision cost is additive to STAFF indirect labor, not a duplicate.
const (
	indRowFirst    = 2
	indRowLast     = 42
	indColRole     = 1
	indColManhours = 3
	indColCost     = 5
)

// IndirectsParser parses the INDIRECTS supervision sheet.
type IndirectsParser struct{}

// NewIndirectsParser creates the parser.
func NewIndirectsParser() *IndirectsParser {
	return &IndirectsParser{}
}

// Parse reads the fixed role range. Rows contribute only with a non-zero
// cost; unmapped role names are warned about but still booked.
func (p *IndirectsParser) Parse(grid [][]string) *IndirectsResult {
	result := &IndirectsResult{}

	for row := indRowFirst; row <= indRowLast && row < len(grid); row++ {
		cost := workbook.ParseCellValue(workbook.Cell(grid, row, indColCost))
		if cost == 0 {
			continue
		}

		line := RoleLine{
			Role:     strings.TrimSpace(workbook.Cell(grid, row, indColRole)),
			Manhours: workbook.ParseCellValue(workbook.Cell(grid, row, indColManhours)),
			Cost:     cost,
			Row:      row,
		}
		if name, code, ok := taxonomy.NormalizeRole(line.Role); ok {
			line.Role = name
			line.Code = code
		} else if line.Role != "" {
			result.Warnings = append(result.Warnings, "unknown role: "+line.Role)
		}

		result.Roles = append(result.Roles, line)
		result.TotalManhours += line.Manhours
		result.TotalCost += line.Cost
	}

	if len(result.Roles) == 0 {
		result.Warnings = append(result.Warnings, "no supervision roles found")
	}

	log.Printf("[IndirectsParser] SUMMARY: roles=%d total=%.2f", len(result.Roles), result.TotalCost)
	return result
}
