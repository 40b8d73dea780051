package models

// CategoryAmount is a manhours/value pair tracked for every budget category.
type CategoryAmount struct {
	Manhours float64 `json:"manhours"`
	Value    float64 `json:"value"`
}

// CategoryTotals holds the fixed twelve-category record kept per discipline.
// Every field is always present; a category missing from the source block is
// simply zero, never an error.
type CategoryTotals struct {
	DirectLabor      CategoryAmount `json:"direct_labor"`
	IndirectLabor    CategoryAmount `json:"indirect_labor"`
	AllLabor         CategoryAmount `json:"all_labor"` // Informational subtotal, not summed
	TaxesInsurance   CategoryAmount `json:"taxes_insurance"`
	PerDiem          CategoryAmount `json:"per_diem"`
	AddOns           CategoryAmount `json:"add_ons"`
	SmallTools       CategoryAmount `json:"small_tools_consumables"`
	Materials        CategoryAmount `json:"materials"`
	Equipment        CategoryAmount `json:"equipment"`
	Subcontracts     CategoryAmount `json:"subcontracts"`
	Risk             CategoryAmount `json:"risk"`
	DisciplineTotals CategoryAmount `json:"discipline_totals"`
}

// Amount returns the record for a category code ("DL", "MA", ...).
// Unknown codes return a nil pointer; callers treat that as "not a budget
// category" rather than an error.
func (c *CategoryTotals) Amount(code string) *CategoryAmount {
	switch code {
	case "DL":
		return &c.DirectLabor
	case "IL":
		return &c.IndirectLabor
	case "AL":
		return &c.AllLabor
	case "TI":
		return &c.TaxesInsurance
	case "PD":
		return &c.PerDiem
	case "AO":
		return &c.AddOns
	case "ST":
		return &c.SmallTools
	case "MA":
		return &c.Materials
	case "EQ":
		return &c.Equipment
	case "SC":
		return &c.Subcontracts
	case "RK":
		return &c.Risk
	case "DT":
		return &c.DisciplineTotals
	}
	return nil
}

// LaborTotal is the per-discipline labor definition: base labor plus burden.
// The ALL LABOR row is informational and deliberately excluded.
func (c *CategoryTotals) LaborTotal() float64 {
	return c.DirectLabor.Value + c.IndirectLabor.Value +
		c.TaxesInsurance.Value + c.PerDiem.Value + c.AddOns.Value
}

// Discipline is a named cost center parsed from the BUDGETS sheet.
type Discipline struct {
	Number     int            `json:"number"`
	Name       string         `json:"name"`
	Categories CategoryTotals `json:"categories"`
	SourceRow  int            `json:"source_row"` // 0-indexed row of the block start
}

// ValidationTarget holds the BUDGETS-derived figures a detail sheet must
// reconcile against.
type ValidationTarget struct {
	DirectLaborManhours float64 `json:"direct_labor_manhours"`
	IndirectLaborValue  float64 `json:"indirect_labor_value"`
	MaterialsValue      float64 `json:"materials_value"`
	EquipmentValue      float64 `json:"equipment_value"`
	SubcontractsValue   float64 `json:"subcontracts_value"`
}

// WorkbookTotals aggregates the whole workbook from BUDGETS sheet blocks.
type WorkbookTotals struct {
	Labor                 float64 `json:"labor"`
	Material              float64 `json:"material"`
	Equipment             float64 `json:"equipment"`
	Subcontract           float64 `json:"subcontract"`
	Other                 float64 `json:"other"`
	GrandTotal            float64 `json:"grand_total"`
	DirectLaborManhours   float64 `json:"direct_labor_manhours"`
	IndirectLaborManhours float64 `json:"indirect_labor_manhours"`
	TotalManhours         float64 `json:"total_manhours"`
}

// BudgetLineItem is one normalized, flattened cost entry. Exactly one of the
// five cost buckets carries TotalCost; the rest are zero.
type BudgetLineItem struct {
	SourceSheet     string  `json:"source_sheet"`
	SourceRow       int     `json:"source_row"`
	Discipline      string  `json:"discipline"`
	Category        string  `json:"category"`
	CostType        string  `json:"cost_type"`
	Description     string  `json:"description"`
	TotalCost       float64 `json:"total_cost"`
	LaborCost       float64 `json:"labor_cost"`
	MaterialCost    float64 `json:"material_cost"`
	EquipmentCost   float64 `json:"equipment_cost"`
	SubcontractCost float64 `json:"subcontract_cost"`
	OtherCost       float64 `json:"other_cost"`
	Manhours        float64 `json:"manhours,omitempty"`
	WBSCode         string  `json:"wbs_code,omitempty"`
}

// WBSNode is one node of the cost-code tree. Codes are unique within a
// project; every non-root node's ParentCode resolves inside the same tree.
type WBSNode struct {
	Code          string     `json:"code"`
	ParentCode    string     `json:"parent_code,omitempty"`
	Level         int        `json:"level"` // 1..5
	Description   string     `json:"description"`
	Phase         string     `json:"phase,omitempty"`
	CostType      string     `json:"cost_type,omitempty"`
	LaborCategory string     `json:"labor_category,omitempty"`
	BudgetTotal   float64    `json:"budget_total"`
	Children      []*WBSNode `json:"children,omitempty"`
}

// Comparison is a budget-vs-sheet numeric check attached to a sheet's
// validation entry.
type Comparison struct {
	Label       string  `json:"label"`
	BudgetValue float64 `json:"budget_value"`
	SheetValue  float64 `json:"sheet_value"`
	Difference  float64 `json:"difference"`   // Absolute
	PercentDiff float64 `json:"percent_diff"` // Of the budget value
}

// SheetValidation is the per-sheet outcome: hard errors, soft warnings, and
// the numeric comparisons that produced them.
type SheetValidation struct {
	Sheet       string       `json:"sheet"`
	Valid       bool         `json:"valid"`
	Errors      []string     `json:"errors"`
	Warnings    []string     `json:"warnings"`
	Comparisons []Comparison `json:"comparisons,omitempty"`
}

// WorkbookValidation aggregates every sheet check plus the cross-sheet rules.
// IsValid is the AND of all sheet validities and all workbook-level rules.
type WorkbookValidation struct {
	Sheets   []*SheetValidation `json:"sheets"`
	Errors   []string           `json:"errors"`   // Workbook-level hard errors
	Warnings []string           `json:"warnings"` // Workbook-level warnings
	IsValid  bool               `json:"is_valid"`
}

// ForSheet returns the entry for a sheet name, or nil.
func (w *WorkbookValidation) ForSheet(name string) *SheetValidation {
	for _, s := range w.Sheets {
		if s.Sheet == name {
			return s
		}
	}
	return nil
}

// AllErrors flattens sheet and workbook errors for top-level reporting.
func (w *WorkbookValidation) AllErrors() []string {
	var out []string
	for _, s := range w.Sheets {
		for _, e := range s.Errors {
			out = append(out, s.Sheet+": "+e)
		}
	}
	out = append(out, w.Errors...)
	return out
}

// AllWarnings flattens sheet and workbook warnings for top-level reporting.
func (w *WorkbookValidation) AllWarnings() []string {
	var out []string
	for _, s := range w.Sheets {
		for _, wn := range s.Warnings {
			out = append(out, s.Sheet+": "+wn)
		}
	}
	out = append(out, w.Warnings...)
	return out
}

// PhaseAllocation is the collaborator-bound projection of STAFF phase labor,
// produced only when a project id is supplied to the run.
type PhaseAllocation struct {
	ProjectID string  `json:"project_id"`
	PhaseCode string  `json:"phase_code"` // P1..P4
	Phase     string  `json:"phase"`
	Manhours  float64 `json:"manhours"`
	Value     float64 `json:"value"`
}

// DirectLaborAllocation is the collaborator-bound projection of DIRECTS
// classification labor per discipline.
type DirectLaborAllocation struct {
	ProjectID      string  `json:"project_id"`
	Discipline     string  `json:"discipline"`
	Code           string  `json:"code"` // DL001..DL039
	Classification string  `json:"classification"`
	Manhours       float64 `json:"manhours"`
	Value          float64 `json:"value"`
}

// ImportResult is the full output of one workbook run. Validation failure
// never empties it; the caller decides what an invalid result means.
type ImportResult struct {
	RunID       string       `json:"run_id"`
	ProjectID   string       `json:"project_id,omitempty"`
	Disciplines []Discipline `json:"disciplines"`

	Totals  WorkbookTotals              `json:"totals"`
	Details map[string][]BudgetLineItem `json:"details"` // Keyed by source sheet

	WBSStructure       []*WBSNode `json:"wbs_structure"`        // 3-level projection
	WBSStructure5Level []*WBSNode `json:"wbs_structure_5level"` // Full tree

	PhaseAllocations       []PhaseAllocation       `json:"phase_allocations,omitempty"`
	DirectLaborAllocations []DirectLaborAllocation `json:"direct_labor_allocations,omitempty"`

	Validation *WorkbookValidation `json:"validation_result"`
	Errors     []string            `json:"errors"`
	Warnings   []string            `json:"warnings"`
}
