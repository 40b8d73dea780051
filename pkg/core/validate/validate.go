// Package validate decides whether the detail sheets are consistent with the
// BUDGETS source-of-truth sheet. Like-for-like totals get a strict dollar
// tolerance; reconciliations that span independently-authored sheets get a
// relative tolerance and degrade to warnings.
package validate

import (
	"fmt"
	"math"

	"budget_engine/pkg/core/sheets"
	"budget_engine/pkg/core/workbook"
	"budget_engine/pkg/models"
)

// constructabilityLabor is the CONSTRUCTABILITY contribution to the indirect
// labor reconciliation. The sheet documents a labor component but defines no
// extraction rule for it yet, so the contribution stays at zero.
const constructabilityLabor = 0.0

// Config defines the tolerance rules.
type Config struct {
	StrictTolerance           float64 `yaml:"strict_tolerance"`            // Dollars/manhours, like-for-like checks
	AggregateTolerancePct     float64 `yaml:"aggregate_tolerance_pct"`     // Indirect labor reconciliation
	ConstructabilityMinRatio  float64 `yaml:"constructability_min_ratio"`  // Expected low multiple
	ConstructabilityMaxRatio  float64 `yaml:"constructability_max_ratio"`  // Expected high multiple
	ConstructabilityReviewPct float64 `yaml:"constructability_review_pct"` // Review threshold below MinRatio
}

// DefaultConfig returns the template's tolerance contract.
func DefaultConfig() Config {
	return Config{
		StrictTolerance:           0.01,
		AggregateTolerancePct:     1.0,
		ConstructabilityMinRatio:  10,
		ConstructabilityMaxRatio:  40,
		ConstructabilityReviewPct: 50,
	}
}

// Inputs carries every parse result; nil means the sheet was absent.
type Inputs struct {
	Summary          *sheets.SummaryResult
	Staff            *sheets.StaffResult
	Directs          *sheets.DirectsResult
	Materials        *sheets.MaterialsResult
	GeneralEquipment *sheets.EquipmentResult
	DiscEquipment    *sheets.EquipmentResult
	Constructability *sheets.ConstructabilityResult
	Indirects        *sheets.IndirectsResult
}

// Validator runs the per-sheet and workbook-level rules.
type Validator struct {
	cfg Config
}

// NewValidator creates a validator with the given tolerances.
func NewValidator(cfg Config) *Validator {
	return &Validator{cfg: cfg}
}

// Validate produces the structured report. Every present sheet gets an
// entry seeded with its parser's own errors and warnings; tolerance failures
// are layered on top. IsValid is the AND of all sheet validities and the
// workbook-level rules.
func (v *Validator) Validate(in Inputs) *models.WorkbookValidation {
	result := &models.WorkbookValidation{}

	v.newSheet(result, workbook.SheetBudgets, in.Summary.Errors, in.Summary.Warnings)

	if in.Directs != nil {
		v.checkDirects(result, in)
	}
	if in.Materials != nil {
		v.checkMaterials(result, in)
	}
	if in.GeneralEquipment != nil || in.DiscEquipment != nil {
		v.checkEquipment(result, in)
	}
	if in.Staff != nil {
		v.checkIndirectLabor(result, in)
	}
	if in.Constructability != nil {
		v.checkConstructability(result, in)
	}
	if in.Indirects != nil {
		v.newSheet(result, workbook.SheetIndirects, in.Indirects.Errors, in.Indirects.Warnings)
	}

	v.checkOrphans(result, in)

	result.IsValid = len(result.Errors) == 0
	for _, s := range result.Sheets {
		s.Valid = len(s.Errors) == 0
		if !s.Valid {
			result.IsValid = false
		}
	}
	return result
}

// newSheet registers a sheet entry seeded with the parser's own findings.
func (v *Validator) newSheet(result *models.WorkbookValidation, name string, errors, warnings []string) *models.SheetValidation {
	s := &models.SheetValidation{
		Sheet:    name,
		Errors:   append([]string(nil), errors...),
		Warnings: append([]string(nil), warnings...),
	}
	result.Sheets = append(result.Sheets, s)
	return s
}

// strictCheck runs one like-for-like comparison against the dollar tolerance
// and records it; any larger difference is a hard error for the sheet.
func (v *Validator) strictCheck(s *models.SheetValidation, label string, budget, sheet float64) {
	diff := math.Abs(sheet - budget)
	cmp := models.Comparison{
		Label:       label,
		BudgetValue: budget,
		SheetValue:  sheet,
		Difference:  diff,
	}
	if budget != 0 {
		cmp.PercentDiff = diff / math.Abs(budget) * 100
	}
	s.Comparisons = append(s.Comparisons, cmp)

	if diff > v.cfg.StrictTolerance {
		s.Errors = append(s.Errors,
			fmt.Sprintf("%s: sheet %.2f vs budget %.2f (diff %.2f exceeds %.2f)",
				label, sheet, budget, diff, v.cfg.StrictTolerance))
	}
}

// checkDirects compares each discipline's craft manhours against the BUDGETS
// direct-labor manhours target.
func (v *Validator) checkDirects(result *models.WorkbookValidation, in Inputs) {
	s := v.newSheet(result, workbook.SheetDirects, in.Directs.Errors, in.Directs.Warnings)
	for _, disc := range in.Directs.Disciplines {
		target, ok := in.Summary.Targets[disc.Name]
		if !ok {
			continue // Orphan rule reports this at workbook level
		}
		v.strictCheck(s, "direct labor manhours ("+disc.Name+")",
			target.DirectLaborManhours, disc.TotalManhours)
	}
}

// checkMaterials compares each discipline's materials total against the
// BUDGETS materials value.
func (v *Validator) checkMaterials(result *models.WorkbookValidation, in Inputs) {
	s := v.newSheet(result, workbook.SheetMaterials, in.Materials.Errors, in.Materials.Warnings)
	for _, disc := range in.Materials.Disciplines {
		target, ok := in.Summary.Targets[disc.Name]
		if !ok {
			continue
		}
		v.strictCheck(s, "materials total ("+disc.Name+")", target.MaterialsValue, disc.Total)
	}
}

// checkEquipment reconciles equipment across the shared and discipline
// sheets: per-discipline combined totals against the BUDGETS equipment
// value, plus the single combined workbook figure.
func (v *Validator) checkEquipment(result *models.WorkbookValidation, in Inputs) {
	var errors, warnings []string
	combined := make(map[string]float64)
	var sheetTotal float64

	if in.GeneralEquipment != nil {
		errors = append(errors, in.GeneralEquipment.Errors...)
		warnings = append(warnings, in.GeneralEquipment.Warnings...)
		for name, total := range in.GeneralEquipment.ByDiscipline {
			combined[name] += total
		}
		sheetTotal += in.GeneralEquipment.Total
	}
	if in.DiscEquipment != nil {
		errors = append(errors, in.DiscEquipment.Errors...)
		warnings = append(warnings, in.DiscEquipment.Warnings...)
		for name, total := range in.DiscEquipment.ByDiscipline {
			combined[name] += total
		}
		sheetTotal += in.DiscEquipment.Total
	}

	s := v.newSheet(result, workbook.SheetGeneralEquipment, errors, warnings)
	for _, disc := range in.Summary.Disciplines {
		total, present := combined[disc.Name]
		if !present {
			continue
		}
		v.strictCheck(s, "equipment total ("+disc.Name+")",
			in.Summary.Targets[disc.Name].EquipmentValue, total)
	}

	// The combined figure is reported, not tolerance-checked; the GENERAL
	// pool has no BUDGETS counterpart to check against.
	s.Comparisons = append(s.Comparisons, models.Comparison{
		Label:       "equipment total (combined sheets)",
		BudgetValue: in.Summary.Totals.Equipment,
		SheetValue:  sheetTotal,
		Difference:  math.Abs(sheetTotal - in.Summary.Totals.Equipment),
	})
}

// checkIndirectLabor reconciles the BUDGETS indirect-labor value against the
// sum of the independently-authored indirect sources. This spans several
// sheets, so a miss is a warning at the relative tolerance, not an error.
func (v *Validator) checkIndirectLabor(result *models.WorkbookValidation, in Inputs) {
	s := v.newSheet(result, workbook.SheetStaff, in.Staff.Errors, in.Staff.Warnings)

	var expected, addOns float64
	for _, target := range in.Summary.Targets {
		expected += target.IndirectLaborValue
	}
	for _, a := range in.Summary.AddOns {
		addOns += a
	}

	var supervision float64
	if in.Indirects != nil {
		supervision = in.Indirects.TotalCost
	}

	actual := in.Staff.PhaseTotal + in.Staff.PerDiem + supervision + constructabilityLabor + addOns

	diff := math.Abs(actual - expected)
	cmp := models.Comparison{
		Label:       "indirect labor (aggregated)",
		BudgetValue: expected,
		SheetValue:  actual,
		Difference:  diff,
	}
	if expected != 0 {
		cmp.PercentDiff = diff / math.Abs(expected) * 100
	}
	s.Comparisons = append(s.Comparisons, cmp)

	if expected != 0 && cmp.PercentDiff > v.cfg.AggregateTolerancePct {
		s.Warnings = append(s.Warnings,
			fmt.Sprintf("aggregated indirect labor %.2f differs from budget %.2f by %.2f%% (tolerance %.2f%%)",
				actual, expected, cmp.PercentDiff, v.cfg.AggregateTolerancePct))
	}
}

// checkConstructability applies the ratio rule: the sheet is expected to run
// 10x-40x its BUDGETS allocation, which budgets only a subset. Inside the
// band is informational; below the band but well over the allocation is
// flagged for review. Never an error.
//
// The allocation is defined here as the sum of the disciplines' RISK values.
// The workbook template has no dedicated constructability row; RISK is the
// only budget-side line that funds field-support cost, which is why the
// expected multiple runs so high.
func (v *Validator) checkConstructability(result *models.WorkbookValidation, in Inputs) {
	s := v.newSheet(result, workbook.SheetConstructability, in.Constructability.Errors, in.Constructability.Warnings)

	var allocation float64
	for _, disc := range in.Summary.Disciplines {
		allocation += disc.Categories.Risk.Value
	}

	total := in.Constructability.Total
	s.Comparisons = append(s.Comparisons, models.Comparison{
		Label:       "constructability total",
		BudgetValue: allocation,
		SheetValue:  total,
		Difference:  math.Abs(total - allocation),
	})
	if allocation == 0 {
		if total > 0 {
			s.Warnings = append(s.Warnings,
				fmt.Sprintf("constructability total %.2f has no budget allocation", total))
		}
		return
	}

	ratio := total / allocation
	switch {
	case ratio >= v.cfg.ConstructabilityMinRatio && ratio <= v.cfg.ConstructabilityMaxRatio:
		s.Warnings = append(s.Warnings,
			fmt.Sprintf("constructability total %.2f is %.1fx its budget allocation %.2f (expected %.0fx-%.0fx)",
				total, ratio, allocation, v.cfg.ConstructabilityMinRatio, v.cfg.ConstructabilityMaxRatio))
	case ratio > v.cfg.ConstructabilityMaxRatio:
		s.Warnings = append(s.Warnings,
			fmt.Sprintf("constructability total %.2f is %.1fx its budget allocation %.2f, above the expected %.0fx ceiling",
				total, ratio, allocation, v.cfg.ConstructabilityMaxRatio))
	case (total-allocation)/allocation*100 > v.cfg.ConstructabilityReviewPct:
		s.Warnings = append(s.Warnings,
			fmt.Sprintf("constructability total %.2f is %.1fx its budget allocation %.2f: flagged for review",
				total, ratio, allocation))
	}
}

// checkOrphans enforces that every discipline named in a detail sheet also
// appears in the BUDGETS discipline set. The GENERAL equipment pool is
// project-wide and exempt.
func (v *Validator) checkOrphans(result *models.WorkbookValidation, in Inputs) {
	known := in.Summary.DisciplineNames()

	report := func(sheet, name string) {
		if name == "" || name == sheets.GeneralDiscipline || known[name] {
			return
		}
		result.Errors = append(result.Errors,
			fmt.Sprintf("orphan discipline %s in %s (not present in %s)", name, sheet, workbook.SheetBudgets))
	}

	if in.Directs != nil {
		for _, d := range in.Directs.Disciplines {
			report(workbook.SheetDirects, d.Name)
		}
	}
	if in.Materials != nil {
		for _, d := range in.Materials.Disciplines {
			report(workbook.SheetMaterials, d.Name)
		}
	}
	if in.GeneralEquipment != nil {
		for name := range in.GeneralEquipment.ByDiscipline {
			report(workbook.SheetGeneralEquipment, name)
		}
	}
	if in.DiscEquipment != nil {
		for name := range in.DiscEquipment.ByDiscipline {
			report(workbook.SheetDiscEquipment, name)
		}
	}
}
