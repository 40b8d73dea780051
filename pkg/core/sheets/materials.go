package sheets

import (
	"log"
	"strings"

	"budget_engine/pkg/core/workbook"
)

// MATERIALS sheet layout: disciplines repeat every 8 rows starting at row 2.
// Each block carries exactly three line types at fixed offsets.
const (
	materialsBlockSize  = 8
	materialsRowFirst   = 2
	materialsColName    = 0
	materialsColValue   = 5
	materialsOffTaxed   = 2 // Taxed materials
	materialsOffTaxes   = 3 // Taxes on those materials
	materialsOffNoTax   = 4 // Non-taxed materials
)

// MaterialsParser parses the MATERIALS sheet.
type MaterialsParser struct{}

// NewMaterialsParser creates the parser.
func NewMaterialsParser() *MaterialsParser {
	return &MaterialsParser{}
}

// Parse walks 8-row blocks until a block has no discipline name. Blocks
// whose three values are all zero are skipped with a warning rather than
// treated as terminators, since the template keeps empty blocks around.
func (p *MaterialsParser) Parse(grid [][]string) *MaterialsResult {
	result := &MaterialsResult{}

	for base := materialsRowFirst; base < len(grid); base += materialsBlockSize {
		name := strings.ToUpper(strings.TrimSpace(workbook.Cell(grid, base, materialsColName)))
		if name == "" {
			break
		}

		disc := MaterialsDiscipline{
			Name:              name,
			TaxedMaterials:    workbook.ParseCellValue(workbook.Cell(grid, base+materialsOffTaxed, materialsColValue)),
			Taxes:             workbook.ParseCellValue(workbook.Cell(grid, base+materialsOffTaxes, materialsColValue)),
			NonTaxedMaterials: workbook.ParseCellValue(workbook.Cell(grid, base+materialsOffNoTax, materialsColValue)),
			Row:               base,
		}
		disc.Total = disc.TaxedMaterials + disc.Taxes + disc.NonTaxedMaterials

		if disc.Total == 0 {
			result.Warnings = append(result.Warnings, "discipline "+name+" has no line items")
			continue
		}
		result.Disciplines = append(result.Disciplines, disc)
		result.Total += disc.Total
	}

	if len(result.Disciplines) == 0 {
		result.Errors = append(result.Errors, "no material blocks found")
	}

	log.Printf("[MaterialsParser] SUMMARY: disciplines=%d total=%.2f", len(result.Disciplines), result.Total)
	return result
}
