package sheets

import (
	"log"
	"strconv"
	"strings"

	"budget_engine/pkg/core/taxonomy"
	"budget_engine/pkg/core/workbook"
	"budget_engine/pkg/models"
)

// BUDGETS sheet column offsets. Fixed template contract.
const (
	sumColNumber   = 0 // Discipline number
	sumColName     = 1 // Discipline name
	sumColCategory = 2 // Category label
	sumColManhours = 3
	sumColValue    = 4
)

// SummaryParser parses the BUDGETS source-of-truth sheet: repeating blocks
// of exactly twelve rows, one per category, in fixed category order.
type SummaryParser struct{}

// NewSummaryParser creates the parser.
func NewSummaryParser() *SummaryParser {
	return &SummaryParser{}
}

// Parse scans the grid for discipline blocks. A block begins at the first
// row whose discipline-number cell is numeric, whose name cell is non-empty,
// and whose category cell reads DIRECT LABOR; the next eleven rows are read
// positionally. Rows that do not start a block are skipped one at a time.
func (p *SummaryParser) Parse(grid [][]string) *SummaryResult {
	result := &SummaryResult{
		AddOns:  make(map[string]float64),
		Targets: make(map[string]models.ValidationTarget),
	}

	row := 0
	for row < len(grid) {
		if !p.isBlockStart(grid, row) {
			row++
			continue
		}

		disc := p.parseBlock(grid, row, result)
		result.Disciplines = append(result.Disciplines, disc)
		p.accumulate(result, disc)
		row += taxonomy.BlockSize
	}

	if len(result.Disciplines) == 0 {
		result.Errors = append(result.Errors, "no discipline blocks found")
	}

	log.Printf("[SummaryParser] SUMMARY: blocks=%d grand_total=%.2f manhours=%.0f errors=%d",
		len(result.Disciplines), result.Totals.GrandTotal, result.Totals.TotalManhours, len(result.Errors))
	return result
}

// isBlockStart applies the three-part block signature.
func (p *SummaryParser) isBlockStart(grid [][]string, row int) bool {
	if !workbook.IsNumericCell(workbook.Cell(grid, row, sumColNumber)) {
		return false
	}
	if strings.TrimSpace(workbook.Cell(grid, row, sumColName)) == "" {
		return false
	}
	label := strings.ToUpper(strings.TrimSpace(workbook.Cell(grid, row, sumColCategory)))
	return label == "DIRECT LABOR"
}

// parseBlock reads the twelve category rows of one discipline block.
// Unmatched or missing labels leave that category at its zero default.
func (p *SummaryParser) parseBlock(grid [][]string, start int, result *SummaryResult) models.Discipline {
	number, _ := strconv.Atoi(strings.TrimSpace(workbook.Cell(grid, start, sumColNumber)))
	name := strings.ToUpper(strings.TrimSpace(workbook.Cell(grid, start, sumColName)))

	disc := models.Discipline{
		Number:    number,
		Name:      name,
		SourceRow: start,
	}

	for offset := 0; offset < taxonomy.BlockSize; offset++ {
		row := start + offset
		label := workbook.Cell(grid, row, sumColCategory)
		code, ok := taxonomy.NormalizeCategory(label)
		if !ok {
			if strings.TrimSpace(label) != "" {
				result.Warnings = append(result.Warnings,
					"unknown category: "+strings.TrimSpace(label)+" (discipline "+name+")")
			}
			continue
		}
		amount := disc.Categories.Amount(code)
		amount.Manhours = workbook.ParseCellValue(workbook.Cell(grid, row, sumColManhours))
		amount.Value = workbook.ParseCellValue(workbook.Cell(grid, row, sumColValue))
	}

	return disc
}

// accumulate folds one discipline into the workbook totals and the derived
// maps consumed downstream.
func (p *SummaryParser) accumulate(result *SummaryResult, disc models.Discipline) {
	c := &disc.Categories

	result.Totals.Labor += c.LaborTotal()
	result.Totals.Material += c.Materials.Value
	result.Totals.Equipment += c.Equipment.Value
	result.Totals.Subcontract += c.Subcontracts.Value
	result.Totals.Other += c.SmallTools.Value + c.Risk.Value
	result.Totals.GrandTotal += c.DisciplineTotals.Value
	result.Totals.DirectLaborManhours += c.DirectLabor.Manhours
	result.Totals.IndirectLaborManhours += c.IndirectLabor.Manhours
	result.Totals.TotalManhours += c.DirectLabor.Manhours + c.IndirectLabor.Manhours

	result.AddOns[disc.Name] = c.AddOns.Value
	result.Targets[disc.Name] = models.ValidationTarget{
		DirectLaborManhours: c.DirectLabor.Manhours,
		IndirectLaborValue:  c.IndirectLabor.Value,
		MaterialsValue:      c.Materials.Value,
		EquipmentValue:      c.Equipment.Value,
		SubcontractsValue:   c.Subcontracts.Value,
	}
}
