package sheets

import (
	"log"
	"strings"

	"budget_engine/pkg/core/workbook"
)

// Equipment sheet layout, shared by GENERAL EQUIPMENT and DISC. EQUIPMENT:
// one item per row, three cost sub-components per item.
const (
	equipRowFirst       = 2
	equipColDiscipline  = 0
	equipColDescription = 1
	equipColEquipment   = 4
	equipColFuel        = 5 // Fuel / oil / grease
	equipColMaintenance = 6
)

// GeneralDiscipline pools equipment rows whose discipline column is blank:
// project-wide cost rather than a data-entry error.
const GeneralDiscipline = "GENERAL"

// EquipmentParser parses either equipment sheet; the two share one layout
// and differ only in which disciplines they carry.
type EquipmentParser struct {
	sheet string
}

// NewEquipmentParser creates a parser labeled with its source sheet name.
func NewEquipmentParser(sheet string) *EquipmentParser {
	return &EquipmentParser{sheet: sheet}
}

// Parse reads item rows until the end of the grid. A row contributes only
// when its combined cost is non-zero.
func (p *EquipmentParser) Parse(grid [][]string) *EquipmentResult {
	result := &EquipmentResult{
		Sheet:        p.sheet,
		ByDiscipline: make(map[string]float64),
	}

	for row := equipRowFirst; row < len(grid); row++ {
		item := EquipmentItem{
			Discipline:      strings.ToUpper(strings.TrimSpace(workbook.Cell(grid, row, equipColDiscipline))),
			Description:     strings.TrimSpace(workbook.Cell(grid, row, equipColDescription)),
			EquipmentCost:   workbook.ParseCellValue(workbook.Cell(grid, row, equipColEquipment)),
			FuelCost:        workbook.ParseCellValue(workbook.Cell(grid, row, equipColFuel)),
			MaintenanceCost: workbook.ParseCellValue(workbook.Cell(grid, row, equipColMaintenance)),
			Row:             row,
		}
		item.Total = item.EquipmentCost + item.FuelCost + item.MaintenanceCost
		if item.Total == 0 {
			continue
		}
		if item.Discipline == "" {
			item.Discipline = GeneralDiscipline
		}

		result.Items = append(result.Items, item)
		result.ByDiscipline[item.Discipline] += item.Total
		result.Total += item.Total
	}

	if len(result.Items) == 0 {
		result.Warnings = append(result.Warnings, "no equipment items found")
	}

	log.Printf("[EquipmentParser] SUMMARY: sheet=%s items=%d total=%.2f",
		p.sheet, len(result.Items), result.Total)
	return result
}
