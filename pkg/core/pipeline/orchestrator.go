// Package pipeline sequences one workbook import: parse the BUDGETS source
// of truth, fan out over the detail sheets, cross-validate, synthesize the
// WBS tree, and flatten everything into line items and totals.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"budget_engine/pkg/core/sheets"
	"budget_engine/pkg/core/validate"
	"budget_engine/pkg/core/wbs"
	"budget_engine/pkg/core/workbook"
	"budget_engine/pkg/models"
)

// ErrMissingBudgets is the one abort-worthy condition: the required sheet is
// absent. Reported as a result error string, not a Go error, so callers
// always get a result to inspect.
const ErrMissingBudgets = "BUDGETS sheet not found - this is required"

// Repository is the persistence collaborator. Implementations store the
// flattened output keyed by project id.
type Repository interface {
	SaveImport(ctx context.Context, projectID string, result *models.ImportResult) error
}

// Orchestrator wires the parsers, validator and WBS generator into the
// single-pass import described above.
type Orchestrator struct {
	summaryParser    *sheets.SummaryParser
	staffParser      *sheets.StaffParser
	directsParser    *sheets.DirectsParser
	materialsParser  *sheets.MaterialsParser
	generalEquipment *sheets.EquipmentParser
	discEquipment    *sheets.EquipmentParser
	constructability *sheets.ConstructabilityParser
	indirectsParser  *sheets.IndirectsParser
	validator        *validate.Validator
	repo             Repository
}

// NewOrchestrator creates an orchestrator with the given tolerance config
// and no repository; persistence is opt-in via SetRepository.
func NewOrchestrator(cfg validate.Config) *Orchestrator {
	return &Orchestrator{
		summaryParser:    sheets.NewSummaryParser(),
		staffParser:      sheets.NewStaffParser(),
		directsParser:    sheets.NewDirectsParser(),
		materialsParser:  sheets.NewMaterialsParser(),
		generalEquipment: sheets.NewEquipmentParser(workbook.SheetGeneralEquipment),
		discEquipment:    sheets.NewEquipmentParser(workbook.SheetDiscEquipment),
		constructability: sheets.NewConstructabilityParser(),
		indirectsParser:  sheets.NewIndirectsParser(),
		validator:        validate.NewValidator(cfg),
	}
}

// SetRepository injects a persistence collaborator (or a test double).
func (o *Orchestrator) SetRepository(repo Repository) {
	o.repo = repo
}

// Run executes the import. It aborts early only when BUDGETS is absent or
// yields no disciplines; in every other case it completes and returns the
// fullest possible result, with validation failures recorded rather than
// suppressing output. The returned error covers infrastructure failures
// (persistence) only.
func (o *Orchestrator) Run(ctx context.Context, wb workbook.Workbook, projectID string) (*models.ImportResult, error) {
	start := time.Now()
	result := &models.ImportResult{
		RunID:     uuid.NewString(),
		ProjectID: projectID,
		Details:   make(map[string][]models.BudgetLineItem),
	}

	budgetsGrid, ok := wb.Sheet(workbook.SheetBudgets)
	if !ok {
		result.Errors = []string{ErrMissingBudgets}
		result.Validation = &models.WorkbookValidation{Errors: []string{ErrMissingBudgets}}
		log.Printf("[Orchestrator] aborting run %s: %s", result.RunID, ErrMissingBudgets)
		return result, nil
	}

	summary := o.summaryParser.Parse(budgetsGrid)
	result.Disciplines = summary.Disciplines
	result.Totals = summary.Totals
	if len(summary.Disciplines) == 0 {
		result.Errors = append(result.Errors, summary.Errors...)
		result.Warnings = append(result.Warnings, summary.Warnings...)
		result.Validation = &models.WorkbookValidation{Errors: summary.Errors, Warnings: summary.Warnings}
		log.Printf("[Orchestrator] aborting run %s: no disciplines in %s", result.RunID, workbook.SheetBudgets)
		return result, nil
	}

	inputs := o.parseDetails(wb, summary)

	result.Validation = o.validator.Validate(inputs)
	result.Errors = result.Validation.AllErrors()
	result.Warnings = result.Validation.AllWarnings()

	gen := wbs.NewGenerator()
	result.WBSStructure5Level = gen.Build(summary.Disciplines)
	result.WBSStructure = wbs.ThreeLevel(result.WBSStructure5Level)

	o.flatten(result, inputs, gen)
	o.allocate(result, inputs)

	if o.repo != nil && projectID != "" {
		if err := o.repo.SaveImport(ctx, projectID, result); err != nil {
			return result, fmt.Errorf("storage failed: %w", err)
		}
	}

	log.Printf("[Orchestrator] run %s complete in %v: disciplines=%d items=%d valid=%t",
		result.RunID, time.Since(start), len(result.Disciplines), o.itemCount(result), result.Validation.IsValid)
	return result, nil
}

// parseDetails runs every present detail parser. The parsers are pure
// functions of (grid, summary-derived scalar) with no shared state, so they
// fan out concurrently; the summary result is read-only by now.
func (o *Orchestrator) parseDetails(wb workbook.Workbook, summary *sheets.SummaryResult) validate.Inputs {
	inputs := validate.Inputs{Summary: summary}

	var totalAddOns float64
	for _, a := range summary.AddOns {
		totalAddOns += a
	}

	var wg sync.WaitGroup
	parse := func(run func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run()
		}()
	}

	if grid, ok := wb.Sheet(workbook.SheetStaff); ok {
		parse(func() { inputs.Staff = o.staffParser.Parse(grid, totalAddOns) })
	}
	if grid, ok := wb.Sheet(workbook.SheetDirects); ok {
		parse(func() { inputs.Directs = o.directsParser.Parse(grid) })
	}
	if grid, ok := wb.Sheet(workbook.SheetMaterials); ok {
		parse(func() { inputs.Materials = o.materialsParser.Parse(grid) })
	}
	if grid, ok := wb.Sheet(workbook.SheetGeneralEquipment); ok {
		parse(func() { inputs.GeneralEquipment = o.generalEquipment.Parse(grid) })
	}
	if grid, ok := workbook.FindSheet(wb, workbook.SheetDiscEquipment, workbook.SheetDiscEquipmentAlt); ok {
		parse(func() { inputs.DiscEquipment = o.discEquipment.Parse(grid) })
	}
	if grid, ok := wb.Sheet(workbook.SheetConstructability); ok {
		parse(func() { inputs.Constructability = o.constructability.Parse(grid) })
	}
	if grid, ok := wb.Sheet(workbook.SheetIndirects); ok {
		parse(func() { inputs.Indirects = o.indirectsParser.Parse(grid) })
	}
	wg.Wait()

	return inputs
}

// allocate builds the collaborator-bound projections. They exist only when
// the run is tied to a project.
func (o *Orchestrator) allocate(result *models.ImportResult, inputs validate.Inputs) {
	if result.ProjectID == "" {
		return
	}

	if inputs.Staff != nil {
		for _, phase := range inputs.Staff.Phases {
			result.PhaseAllocations = append(result.PhaseAllocations, models.PhaseAllocation{
				ProjectID: result.ProjectID,
				PhaseCode: phase.Code,
				Phase:     phase.Phase,
				Manhours:  phase.Manhours,
				Value:     phase.Total,
			})
		}
	}

	if inputs.Directs != nil {
		for _, disc := range inputs.Directs.Disciplines {
			for _, line := range disc.Classifications {
				result.DirectLaborAllocations = append(result.DirectLaborAllocations, models.DirectLaborAllocation{
					ProjectID:      result.ProjectID,
					Discipline:     disc.Name,
					Code:           line.Code,
					Classification: line.Classification,
					Manhours:       line.Manhours,
					Value:          line.Cost,
				})
			}
		}
	}
}

func (o *Orchestrator) itemCount(result *models.ImportResult) int {
	n := 0
	for _, items := range result.Details {
		n += len(items)
	}
	return n
}
