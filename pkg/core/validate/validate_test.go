package validate

import (
	"math"
	"strings"
	"testing"

	"budget_engine/pkg/core/sheets"
	"budget_engine/pkg/core/workbook"
	"budget_engine/pkg/models"
)

// baseSummary fabricates a two-discipline BUDGETS parse with the targets the
// detail sheets reconcile against.
func baseSummary() *sheets.SummaryResult {
	piping := models.Discipline{Number: 1, Name: "PIPING"}
	piping.Categories.DirectLabor = models.CategoryAmount{Manhours: 1000, Value: 60000}
	piping.Categories.IndirectLabor = models.CategoryAmount{Value: 18000}
	piping.Categories.Materials = models.CategoryAmount{Value: 40000}
	piping.Categories.Equipment = models.CategoryAmount{Value: 7000}
	piping.Categories.Risk = models.CategoryAmount{Value: 3000}

	civil := models.Discipline{Number: 2, Name: "CIVIL"}
	civil.Categories.DirectLabor = models.CategoryAmount{Manhours: 400, Value: 20000}
	civil.Categories.IndirectLabor = models.CategoryAmount{Value: 6000}
	civil.Categories.Materials = models.CategoryAmount{Value: 10000}

	return &sheets.SummaryResult{
		Disciplines: []models.Discipline{piping, civil},
		Totals:      models.WorkbookTotals{Equipment: 7000},
		AddOns:      map[string]float64{"PIPING": 2000, "CIVIL": 500},
		Targets: map[string]models.ValidationTarget{
			"PIPING": {
				DirectLaborManhours: 1000,
				IndirectLaborValue:  18000,
				MaterialsValue:      40000,
				EquipmentValue:      7000,
			},
			"CIVIL": {
				DirectLaborManhours: 400,
				IndirectLaborValue:  6000,
				MaterialsValue:      10000,
			},
		},
	}
}

func TestStrictDirectsMatchWithinTolerance(t *testing.T) {
	v := NewValidator(DefaultConfig())
	result := v.Validate(Inputs{
		Summary: baseSummary(),
		Directs: &sheets.DirectsResult{
			Disciplines: []sheets.DirectsDiscipline{
				{Name: "PIPING", TotalManhours: 1000.005},
				{Name: "CIVIL", TotalManhours: 400},
			},
		},
	})

	s := result.ForSheet(workbook.SheetDirects)
	if s == nil {
		t.Fatal("no DIRECTS entry")
	}
	if len(s.Errors) != 0 {
		t.Errorf("within-tolerance diff must pass: %v", s.Errors)
	}
	if len(s.Comparisons) != 2 {
		t.Errorf("comparisons = %d, want 2", len(s.Comparisons))
	}
	if !result.IsValid {
		t.Error("workbook must be valid")
	}
}

func TestStrictDirectsMismatchIsHardError(t *testing.T) {
	v := NewValidator(DefaultConfig())
	result := v.Validate(Inputs{
		Summary: baseSummary(),
		Directs: &sheets.DirectsResult{
			Disciplines: []sheets.DirectsDiscipline{
				{Name: "PIPING", TotalManhours: 995}, // 5 mh short
			},
		},
	})

	s := result.ForSheet(workbook.SheetDirects)
	if len(s.Errors) != 1 {
		t.Fatalf("errors = %v", s.Errors)
	}
	if s.Valid {
		t.Error("sheet must be invalid")
	}
	if result.IsValid {
		t.Error("one invalid sheet fails the workbook")
	}
}

func TestStrictMaterialsPerDiscipline(t *testing.T) {
	v := NewValidator(DefaultConfig())
	result := v.Validate(Inputs{
		Summary: baseSummary(),
		Materials: &sheets.MaterialsResult{
			Disciplines: []sheets.MaterialsDiscipline{
				{Name: "PIPING", Total: 40000},
				{Name: "CIVIL", Total: 10000.02}, // 2 cents over
			},
		},
	})

	s := result.ForSheet(workbook.SheetMaterials)
	if len(s.Errors) != 1 || !strings.Contains(s.Errors[0], "CIVIL") {
		t.Errorf("errors = %v", s.Errors)
	}
}

func TestEquipmentCombinedAcrossSheets(t *testing.T) {
	v := NewValidator(DefaultConfig())
	result := v.Validate(Inputs{
		Summary: baseSummary(),
		GeneralEquipment: &sheets.EquipmentResult{
			Sheet:        workbook.SheetGeneralEquipment,
			ByDiscipline: map[string]float64{"PIPING": 4000, sheets.GeneralDiscipline: 9000},
			Total:        13000,
		},
		DiscEquipment: &sheets.EquipmentResult{
			Sheet:        workbook.SheetDiscEquipment,
			ByDiscipline: map[string]float64{"PIPING": 3000},
			Total:        3000,
		},
	})

	// PIPING's two sheets combine to the 7000 target; the GENERAL pool has
	// no counterpart and must not produce an error.
	s := result.ForSheet(workbook.SheetGeneralEquipment)
	if len(s.Errors) != 0 {
		t.Errorf("errors = %v", s.Errors)
	}
	found := false
	for _, cmp := range s.Comparisons {
		if cmp.Label == "equipment total (combined sheets)" {
			found = true
			if math.Abs(cmp.SheetValue-16000) > 1e-9 {
				t.Errorf("combined sheet value = %.2f, want 16000", cmp.SheetValue)
			}
		}
	}
	if !found {
		t.Error("combined comparison missing")
	}
}

func TestIndirectLaborAggregateWarning(t *testing.T) {
	v := NewValidator(DefaultConfig())
	// Expected indirect labor: 18000 + 6000 = 24000. Add-ons: 2500.
	// Actual: 19000 + 1000 + 1000 + 2500 = 23500, off by 2.08% -> warning.
	result := v.Validate(Inputs{
		Summary:   baseSummary(),
		Staff:     &sheets.StaffResult{PhaseTotal: 19000, PerDiem: 1000},
		Indirects: &sheets.IndirectsResult{TotalCost: 1000},
	})

	s := result.ForSheet(workbook.SheetStaff)
	if len(s.Warnings) != 1 {
		t.Fatalf("warnings = %v", s.Warnings)
	}
	if len(s.Errors) != 0 {
		t.Errorf("aggregate miss must never be an error: %v", s.Errors)
	}
	if !result.IsValid {
		t.Error("warnings alone must not fail the workbook")
	}
}

func TestIndirectLaborAggregateWithinTolerance(t *testing.T) {
	v := NewValidator(DefaultConfig())
	// Actual: 20400 + 100 + 1000 + 2500 = 24000 exactly.
	result := v.Validate(Inputs{
		Summary:   baseSummary(),
		Staff:     &sheets.StaffResult{PhaseTotal: 20400, PerDiem: 100},
		Indirects: &sheets.IndirectsResult{TotalCost: 1000},
	})

	if s := result.ForSheet(workbook.SheetStaff); len(s.Warnings) != 0 {
		t.Errorf("warnings = %v", s.Warnings)
	}
}

func TestConstructabilityRatioNeverErrors(t *testing.T) {
	cases := []struct {
		name     string
		total    float64
		warnPart string
	}{
		// Allocation is 3000 (PIPING risk).
		{"inside band", 75000, "expected 10x-40x"}, // 25x
		{"above ceiling", 150000, "ceiling"},       // 50x
		{"review zone", 6000, "flagged for review"},
		{"at allocation", 3000, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewValidator(DefaultConfig())
			result := v.Validate(Inputs{
				Summary:          baseSummary(),
				Constructability: &sheets.ConstructabilityResult{Total: tc.total},
			})

			s := result.ForSheet(workbook.SheetConstructability)
			if len(s.Errors) != 0 {
				t.Fatalf("ratio rule produced an error: %v", s.Errors)
			}
			if tc.warnPart == "" {
				if len(s.Warnings) != 0 {
					t.Errorf("warnings = %v", s.Warnings)
				}
				return
			}
			if len(s.Warnings) != 1 || !strings.Contains(s.Warnings[0], tc.warnPart) {
				t.Errorf("warnings = %v, want contains %q", s.Warnings, tc.warnPart)
			}
		})
	}
}

func TestConstructabilityNoAllocation(t *testing.T) {
	summary := baseSummary()
	for i := range summary.Disciplines {
		summary.Disciplines[i].Categories.Risk = models.CategoryAmount{}
	}

	v := NewValidator(DefaultConfig())
	result := v.Validate(Inputs{
		Summary:          summary,
		Constructability: &sheets.ConstructabilityResult{Total: 5000},
	})

	s := result.ForSheet(workbook.SheetConstructability)
	if len(s.Warnings) != 1 || !strings.Contains(s.Warnings[0], "no budget allocation") {
		t.Errorf("warnings = %v", s.Warnings)
	}
}

func TestOrphanDisciplineIsWorkbookError(t *testing.T) {
	v := NewValidator(DefaultConfig())
	result := v.Validate(Inputs{
		Summary: baseSummary(),
		Materials: &sheets.MaterialsResult{
			Disciplines: []sheets.MaterialsDiscipline{
				{Name: "REFRACTORY", Total: 5000},
			},
		},
		GeneralEquipment: &sheets.EquipmentResult{
			ByDiscipline: map[string]float64{sheets.GeneralDiscipline: 2000},
			Total:        2000,
		},
	})

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "REFRACTORY") {
		t.Fatalf("workbook errors = %v", result.Errors)
	}
	if result.IsValid {
		t.Error("orphan discipline must fail the workbook")
	}
}

func TestParserErrorsSeedSheetEntries(t *testing.T) {
	summary := baseSummary()
	summary.Warnings = []string{"category mismatch at row 7"}

	v := NewValidator(DefaultConfig())
	result := v.Validate(Inputs{
		Summary: summary,
		Directs: &sheets.DirectsResult{Errors: []string{"no discipline sections found"}},
	})

	if s := result.ForSheet(workbook.SheetBudgets); len(s.Warnings) != 1 {
		t.Errorf("BUDGETS warnings = %v", s.Warnings)
	}
	s := result.ForSheet(workbook.SheetDirects)
	if len(s.Errors) != 1 || s.Valid {
		t.Errorf("DIRECTS entry = %+v", s)
	}
	if result.IsValid {
		t.Error("a seeded parser error must fail the workbook")
	}
}
