package sheets

import (
	"math"
	"testing"
)

// materialsGrid builds 8-row MATERIALS blocks. Each block is
// {name, taxed, taxes, nonTaxed}.
func materialsGrid(blocks [][4]string) [][]string {
	grid := [][]string{
		{"MATERIALS BY DISCIPLINE"},
		{""},
	}
	for _, b := range blocks {
		rows := make([][]string, materialsBlockSize)
		for i := range rows {
			rows[i] = make([]string, 6)
		}
		rows[0][materialsColName] = b[0]
		rows[materialsOffTaxed][materialsColValue] = b[1]
		rows[materialsOffTaxes][materialsColValue] = b[2]
		rows[materialsOffNoTax][materialsColValue] = b[3]
		grid = append(grid, rows...)
	}
	return grid
}

func TestMaterialsBlocks(t *testing.T) {
	grid := materialsGrid([][4]string{
		{"PIPING", "$40,000.00", "3300.00", "12000"},
		{"ELECTRICAL", "25000", "2062.50", "0"},
	})

	result := NewMaterialsParser().Parse(grid)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Disciplines) != 2 {
		t.Fatalf("expected 2 disciplines, got %d", len(result.Disciplines))
	}

	piping := result.Disciplines[0]
	if piping.Name != "PIPING" {
		t.Errorf("first discipline = %s", piping.Name)
	}
	if math.Abs(piping.TaxedMaterials-40000) > 1e-9 || math.Abs(piping.Taxes-3300) > 1e-9 {
		t.Errorf("PIPING taxed/taxes = %.2f/%.2f", piping.TaxedMaterials, piping.Taxes)
	}
	if math.Abs(piping.Total-55300) > 1e-9 {
		t.Errorf("PIPING total = %.2f, want 55300", piping.Total)
	}
	if math.Abs(result.Total-(55300+27062.50)) > 1e-9 {
		t.Errorf("sheet total = %.2f", result.Total)
	}
}

func TestMaterialsZeroBlockSkippedWithWarning(t *testing.T) {
	grid := materialsGrid([][4]string{
		{"CIVIL", "0", "0", "0"},
		{"STRUCTURAL", "8000", "660", "0"},
	})

	result := NewMaterialsParser().Parse(grid)
	if len(result.Disciplines) != 1 || result.Disciplines[0].Name != "STRUCTURAL" {
		t.Fatalf("disciplines = %+v", result.Disciplines)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("warnings = %v", result.Warnings)
	}
}

func TestMaterialsBlankNameTerminates(t *testing.T) {
	grid := materialsGrid([][4]string{
		{"PIPING", "1000", "0", "0"},
		{"", "9999", "0", "0"}, // Past the terminator, must be ignored
	})

	result := NewMaterialsParser().Parse(grid)
	if len(result.Disciplines) != 1 {
		t.Fatalf("expected 1 discipline, got %d", len(result.Disciplines))
	}
	if math.Abs(result.Total-1000) > 1e-9 {
		t.Errorf("total = %.2f, want 1000", result.Total)
	}
}

func TestMaterialsEmptySheet(t *testing.T) {
	result := NewMaterialsParser().Parse([][]string{{"MATERIALS"}, {}})
	if len(result.Errors) != 1 {
		t.Errorf("errors = %v", result.Errors)
	}
}
