// Package sheets holds the per-sheet parsers. Each parser is a small layout
// strategy for one worksheet of the budget workbook template: positions are
// hard-coded (the template is frozen, nothing is self-describing), matching
// against the controlled vocabularies in the taxonomy package. Parsers never
// return Go errors for data problems; problems accumulate into each result's
// Errors/Warnings and the run continues.
package sheets

import "budget_engine/pkg/models"

// RoleLine is one named-role row from the STAFF or INDIRECTS sheets.
type RoleLine struct {
	Role     string  `json:"role"` // Canonical name, or the raw text when unmapped
	Code     string  `json:"code"` // IL001..IL023, empty when unmapped
	Manhours float64 `json:"manhours"`
	Cost     float64 `json:"cost"`
	Row      int     `json:"row"`
}

// ClassificationLine is one craft row from a DIRECTS section.
type ClassificationLine struct {
	Classification string  `json:"classification"`
	Code           string  `json:"code"` // DL001..DL039, empty when unmapped
	Manhours       float64 `json:"manhours"`
	Cost           float64 `json:"cost"`
	Row            int     `json:"row"`
}

// SummaryResult is the parse of the BUDGETS source-of-truth sheet.
type SummaryResult struct {
	Disciplines []models.Discipline `json:"disciplines"`
	Totals      models.WorkbookTotals

	// AddOns and Targets are the derived maps the STAFF parser and the
	// cross-sheet validator consume, keyed by discipline name. Read-only
	// once produced.
	AddOns  map[string]float64                 `json:"add_ons"`
	Targets map[string]models.ValidationTarget `json:"targets"`

	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// DisciplineNames returns the set of discipline names for orphan checks.
func (r *SummaryResult) DisciplineNames() map[string]bool {
	names := make(map[string]bool, len(r.Disciplines))
	for _, d := range r.Disciplines {
		names[d.Name] = true
	}
	return names
}

// PhaseBreakdown is one execution phase of the STAFF sheet.
type PhaseBreakdown struct {
	Code     string     `json:"code"` // P1..P4
	Phase    string     `json:"phase"`
	Roles    []RoleLine `json:"roles"`
	Manhours float64    `json:"manhours"`
	Total    float64    `json:"total"`
}

// StaffResult is the parse of the STAFF (indirect phases) sheet.
type StaffResult struct {
	Phases     []PhaseBreakdown `json:"phases"`
	PhaseTotal float64          `json:"phase_total"` // Sum of phase totals, excluding add-ons
	AddOns     float64          `json:"add_ons"`     // Folded in from the BUDGETS parse
	PerDiem    float64          `json:"per_diem"`
	Total      float64          `json:"total"` // PhaseTotal + AddOns
	Errors     []string         `json:"errors"`
	Warnings   []string         `json:"warnings"`
}

// DirectsDiscipline is one 10-column discipline section of the DIRECTS sheet.
type DirectsDiscipline struct {
	Name            string               `json:"name"`
	Classifications []ClassificationLine `json:"classifications"`
	TotalManhours   float64              `json:"total_manhours"`
	TotalCost       float64              `json:"total_cost"`
}

// DirectsResult is the parse of the DIRECTS sheet.
type DirectsResult struct {
	Disciplines []DirectsDiscipline `json:"disciplines"`
	Errors      []string            `json:"errors"`
	Warnings    []string            `json:"warnings"`
}

// MaterialsDiscipline is one 8-row discipline block of the MATERIALS sheet.
// Each block carries exactly three line types in fixed order.
type MaterialsDiscipline struct {
	Name              string  `json:"name"`
	TaxedMaterials    float64 `json:"taxed_materials"`
	Taxes             float64 `json:"taxes"`
	NonTaxedMaterials float64 `json:"non_taxed_materials"`
	Total             float64 `json:"total"`
	Row               int     `json:"row"`
}

// MaterialsResult is the parse of the MATERIALS sheet.
type MaterialsResult struct {
	Disciplines []MaterialsDiscipline `json:"disciplines"`
	Total       float64               `json:"total"`
	Errors      []string              `json:"errors"`
	Warnings    []string              `json:"warnings"`
}

// EquipmentItem is one row of an equipment sheet, decomposed into its three
// cost sub-components.
type EquipmentItem struct {
	Discipline      string  `json:"discipline"` // "GENERAL" when the column is blank
	Description     string  `json:"description"`
	EquipmentCost   float64 `json:"equipment_cost"`
	FuelCost        float64 `json:"fuel_cost"` // Fuel / oil / grease
	MaintenanceCost float64 `json:"maintenance_cost"`
	Total           float64 `json:"total"`
	Row             int     `json:"row"`
}

// EquipmentResult is the parse of GENERAL EQUIPMENT or DISC. EQUIPMENT.
type EquipmentResult struct {
	Sheet        string             `json:"sheet"`
	Items        []EquipmentItem    `json:"items"`
	ByDiscipline map[string]float64 `json:"by_discipline"`
	Total        float64            `json:"total"`
	Errors       []string           `json:"errors"`
	Warnings     []string           `json:"warnings"`
}

// ConstructabilityItem is one cost row under a constructability category.
type ConstructabilityItem struct {
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	Row         int     `json:"row"`
}

// ConstructabilityCategoryResult is one of the seven fixed categories.
type ConstructabilityCategoryResult struct {
	Name    string                 `json:"name"`
	WBSName string                 `json:"wbs_name"` // PRE-JOB maps to TEMPORARY FACILITIES
	Items   []ConstructabilityItem `json:"items"`
	Total   float64                `json:"total"`
}

// ConstructabilityResult is the parse of the CONSTRUCTABILITY sheet.
type ConstructabilityResult struct {
	Categories []ConstructabilityCategoryResult `json:"categories"`
	Total      float64                          `json:"total"`
	Errors     []string                         `json:"errors"`
	Warnings   []string                         `json:"warnings"`
}

// IndirectsResult is the parse of the INDIRECTS (supervision) sheet. Its
// cost is additive to, not a duplicate of, STAFF indirect labor.
type IndirectsResult struct {
	Roles         []RoleLine `json:"roles"`
	TotalManhours float64    `json:"total_manhours"`
	TotalCost     float64    `json:"total_cost"`
	Errors        []string   `json:"errors"`
	Warnings      []string   `json:"warnings"`
}
