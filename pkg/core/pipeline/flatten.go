package pipeline

import (
	"budget_engine/pkg/core/sheets"
	"budget_engine/pkg/core/taxonomy"
	"budget_engine/pkg/core/validate"
	"budget_engine/pkg/core/wbs"
	"budget_engine/pkg/core/workbook"
	"budget_engine/pkg/models"
)

// bucketForCategory maps a category code onto the one-hot cost bucket.
func bucketForCategory(code string) string {
	switch code {
	case "DL", "IL", "TI", "PD", "AO":
		return "labor"
	case "MA":
		return "material"
	case "EQ":
		return "equipment"
	case "SC":
		return "subcontract"
	}
	return "other"
}

// newLineItem builds a line item with exactly one cost bucket carrying the
// total. Items are never mutated after this.
func newLineItem(sheet string, row int, discipline, category, costType, description string, total float64, bucket string) models.BudgetLineItem {
	item := models.BudgetLineItem{
		SourceSheet: sheet,
		SourceRow:   row,
		Discipline:  discipline,
		Category:    category,
		CostType:    costType,
		Description: description,
		TotalCost:   total,
	}
	switch bucket {
	case "labor":
		item.LaborCost = total
	case "material":
		item.MaterialCost = total
	case "equipment":
		item.EquipmentCost = total
	case "subcontract":
		item.SubcontractCost = total
	default:
		item.OtherCost = total
	}
	return item
}

// flatten turns every parse result into the Details map of one-hot line
// items, tagging each with its WBS leaf code where one exists.
func (o *Orchestrator) flatten(result *models.ImportResult, inputs validate.Inputs, gen *wbs.Generator) {
	o.flattenSummary(result, inputs.Summary, gen)

	if inputs.Staff != nil {
		o.flattenStaff(result, inputs.Staff, gen)
	}
	if inputs.Directs != nil {
		o.flattenDirects(result, inputs.Directs, gen)
	}
	if inputs.Materials != nil {
		o.flattenMaterials(result, inputs.Materials, gen)
	}
	if inputs.GeneralEquipment != nil {
		o.flattenEquipment(result, workbook.SheetGeneralEquipment, inputs.GeneralEquipment, gen)
	}
	if inputs.DiscEquipment != nil {
		o.flattenEquipment(result, workbook.SheetDiscEquipment, inputs.DiscEquipment, gen)
	}
	if inputs.Constructability != nil {
		o.flattenConstructability(result, inputs.Constructability)
	}
	if inputs.Indirects != nil {
		o.flattenIndirects(result, inputs.Indirects, gen)
	}
}

// flattenSummary emits one item per discipline per budget category. The two
// informational subtotal rows never become items.
func (o *Orchestrator) flattenSummary(result *models.ImportResult, summary *sheets.SummaryResult, gen *wbs.Generator) {
	for _, disc := range summary.Disciplines {
		for offset, cat := range taxonomy.Categories {
			if cat.Code == "AL" || cat.Code == "DT" {
				continue
			}
			amount := disc.Categories.Amount(cat.Code)
			if amount.Value == 0 {
				continue
			}
			item := newLineItem(workbook.SheetBudgets, disc.SourceRow+offset,
				disc.Name, cat.Label, cat.Label, cat.Label+" - "+disc.Name,
				amount.Value, bucketForCategory(cat.Code))
			item.Manhours = amount.Manhours
			item.WBSCode = gen.CodeForItem(disc.Name, cat.Code, "")
			result.Details[workbook.SheetBudgets] = append(result.Details[workbook.SheetBudgets], item)
		}
	}
}

func (o *Orchestrator) flattenStaff(result *models.ImportResult, staff *sheets.StaffResult, gen *wbs.Generator) {
	for _, phase := range staff.Phases {
		for _, role := range phase.Roles {
			item := newLineItem(workbook.SheetStaff, role.Row,
				"", "INDIRECT LABOR", role.Role, phase.Phase+" - "+role.Role,
				role.Cost, "labor")
			item.Manhours = role.Manhours
			result.Details[workbook.SheetStaff] = append(result.Details[workbook.SheetStaff], item)
		}
	}
}

func (o *Orchestrator) flattenDirects(result *models.ImportResult, directs *sheets.DirectsResult, gen *wbs.Generator) {
	for _, disc := range directs.Disciplines {
		for _, line := range disc.Classifications {
			item := newLineItem(workbook.SheetDirects, line.Row,
				disc.Name, "DIRECT LABOR", line.Classification, line.Classification+" - "+disc.Name,
				line.Cost, "labor")
			item.Manhours = line.Manhours
			item.WBSCode = gen.CodeForItem(disc.Name, "DL", "")
			result.Details[workbook.SheetDirects] = append(result.Details[workbook.SheetDirects], item)
		}
	}
}

func (o *Orchestrator) flattenMaterials(result *models.ImportResult, materials *sheets.MaterialsResult, gen *wbs.Generator) {
	lines := []struct {
		costType string
		offset   int
		value    func(sheets.MaterialsDiscipline) float64
	}{
		{"TAXED MATERIALS", 2, func(d sheets.MaterialsDiscipline) float64 { return d.TaxedMaterials }},
		{"MATERIAL TAXES", 3, func(d sheets.MaterialsDiscipline) float64 { return d.Taxes }},
		{"NON-TAXED MATERIALS", 4, func(d sheets.MaterialsDiscipline) float64 { return d.NonTaxedMaterials }},
	}

	for _, disc := range materials.Disciplines {
		for _, line := range lines {
			value := line.value(disc)
			if value == 0 {
				continue
			}
			item := newLineItem(workbook.SheetMaterials, disc.Row+line.offset,
				disc.Name, "MATERIALS", line.costType, line.costType+" - "+disc.Name,
				value, "material")
			item.WBSCode = gen.CodeForItem(disc.Name, "MA", "")
			result.Details[workbook.SheetMaterials] = append(result.Details[workbook.SheetMaterials], item)
		}
	}
}

func (o *Orchestrator) flattenEquipment(result *models.ImportResult, sheet string, equip *sheets.EquipmentResult, gen *wbs.Generator) {
	for _, eq := range equip.Items {
		item := newLineItem(sheet, eq.Row,
			eq.Discipline, "EQUIPMENT", "EQUIPMENT", eq.Description,
			eq.Total, "equipment")
		item.WBSCode = gen.CodeForItem(eq.Discipline, "EQ", "")
		result.Details[sheet] = append(result.Details[sheet], item)
	}
}

// flattenConstructability books field-support cost project-wide under each
// category's WBS name (PRE-JOB rides as TEMPORARY FACILITIES).
func (o *Orchestrator) flattenConstructability(result *models.ImportResult, constr *sheets.ConstructabilityResult) {
	for _, cat := range constr.Categories {
		for _, entry := range cat.Items {
			item := newLineItem(workbook.SheetConstructability, entry.Row,
				sheets.GeneralDiscipline, cat.WBSName, cat.WBSName, entry.Description,
				entry.Cost, "other")
			result.Details[workbook.SheetConstructability] = append(result.Details[workbook.SheetConstructability], item)
		}
	}
}

func (o *Orchestrator) flattenIndirects(result *models.ImportResult, indirects *sheets.IndirectsResult, gen *wbs.Generator) {
	for _, role := range indirects.Roles {
		item := newLineItem(workbook.SheetIndirects, role.Row,
			"", "INDIRECT LABOR", role.Role, "SUPERVISION - "+role.Role,
			role.Cost, "labor")
		item.Manhours = role.Manhours
		result.Details[workbook.SheetIndirects] = append(result.Details[workbook.SheetIndirects], item)
	}
}
