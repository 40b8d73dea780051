// Package wbs synthesizes the cost-code tree from the BUDGETS discipline
// list: a 5-level structure (project, discipline, cost grouping, cost type,
// leaf) with deterministic dotted-decimal codes, plus the 3-level projection
// legacy consumers read.
package wbs

import (
	"fmt"
	"log"
	"sort"

	"budget_engine/pkg/core/taxonomy"
	"budget_engine/pkg/models"
)

// costGroup is one level-3 grouping and the category codes feeding it.
type costGroup struct {
	name       string
	categories []string
}

// costGroups fixes the level-3 order. ALL LABOR and DISCIPLINE TOTALS are
// informational subtotals and never enter the tree.
var costGroups = []costGroup{
	{"LABOR", []string{"DL", "IL", "TI", "PD", "AO"}},
	{"MATERIALS", []string{"MA"}},
	{"EQUIPMENT", []string{"EQ"}},
	{"SUBCONTRACTS", []string{"SC"}},
	{"OTHER", []string{"ST", "RK"}},
}

// laborCategoryTag tags labor-group leaves for downstream labor reporting.
func laborCategoryTag(code string) string {
	switch code {
	case "DL":
		return "DIRECT"
	case "IL":
		return "INDIRECT"
	case "TI", "PD", "AO":
		return "BURDEN"
	}
	return ""
}

// Generator builds the tree and answers code lookups for line-item tagging.
type Generator struct {
	// leafCodes is keyed "DISCIPLINE|CODE" after Build.
	leafCodes map[string]string
}

// NewGenerator creates an empty generator; Build populates the lookup index.
func NewGenerator() *Generator {
	return &Generator{leafCodes: make(map[string]string)}
}

// Build synthesizes the 5-level tree. Disciplines are ordered by number so
// codes are stable across runs regardless of sheet order; budget totals roll
// up from the leaves.
func (g *Generator) Build(disciplines []models.Discipline) []*models.WBSNode {
	ordered := make([]models.Discipline, len(disciplines))
	copy(ordered, disciplines)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Number != ordered[j].Number {
			return ordered[i].Number < ordered[j].Number
		}
		return ordered[i].Name < ordered[j].Name
	})

	root := &models.WBSNode{
		Code:        "1",
		Level:       1,
		Description: "PROJECT TOTAL",
	}

	// Discipline numbers should be unique, but codes must be. A duplicate
	// number bumps to the next free one, preserving sort order.
	usedNumbers := make(map[int]bool, len(ordered))

	for _, disc := range ordered {
		number := disc.Number
		for usedNumbers[number] {
			number++
		}
		if number != disc.Number {
			log.Printf("[WBSGenerator] duplicate discipline number %d (%s): assigned code 1.%d",
				disc.Number, disc.Name, number)
		}
		usedNumbers[number] = true

		discNode := &models.WBSNode{
			Code:        fmt.Sprintf("1.%d", number),
			ParentCode:  root.Code,
			Level:       2,
			Description: disc.Name,
		}

		for gi, group := range costGroups {
			groupNode := &models.WBSNode{
				Code:        fmt.Sprintf("%s.%d", discNode.Code, gi+1),
				ParentCode:  discNode.Code,
				Level:       3,
				Description: group.name,
			}

			for ci, code := range group.categories {
				amount := disc.Categories.Amount(code)
				typeNode := &models.WBSNode{
					Code:          fmt.Sprintf("%s.%d", groupNode.Code, ci+1),
					ParentCode:    groupNode.Code,
					Level:         4,
					Description:   taxonomy.CategoryLabel(code),
					CostType:      taxonomy.CategoryLabel(code),
					LaborCategory: laborCategoryTag(code),
				}
				leaf := &models.WBSNode{
					Code:          typeNode.Code + ".1",
					ParentCode:    typeNode.Code,
					Level:         5,
					Description:   "BUDGET",
					CostType:      typeNode.CostType,
					LaborCategory: typeNode.LaborCategory,
					BudgetTotal:   amount.Value,
				}
				typeNode.Children = append(typeNode.Children, leaf)
				typeNode.BudgetTotal = leaf.BudgetTotal

				g.leafCodes[disc.Name+"|"+code] = leaf.Code
				groupNode.Children = append(groupNode.Children, typeNode)
				groupNode.BudgetTotal += typeNode.BudgetTotal
			}

			discNode.Children = append(discNode.Children, groupNode)
			discNode.BudgetTotal += groupNode.BudgetTotal
		}

		root.Children = append(root.Children, discNode)
		root.BudgetTotal += discNode.BudgetTotal
	}

	log.Printf("[WBSGenerator] SUMMARY: disciplines=%d total=%.2f", len(ordered), root.BudgetTotal)
	return []*models.WBSNode{root}
}

// CodeForItem returns the leaf code a flattened line item is tagged with.
// phase is accepted for call-site symmetry: the tree carries no per-phase
// leaves today because the BUDGETS sheet holds no phase breakdown, so the
// cost-type leaf answers for every phase.
func (g *Generator) CodeForItem(discipline, costTypeCode, phase string) string {
	_ = phase
	return g.leafCodes[discipline+"|"+costTypeCode]
}

// ThreeLevel projects the full tree down to levels 1-3: same codes, parents
// and totals, children pruned recursively. A structural filter only; totals
// are never recomputed here.
func ThreeLevel(nodes []*models.WBSNode) []*models.WBSNode {
	var out []*models.WBSNode
	for _, n := range nodes {
		if n.Level > 3 {
			continue
		}
		clone := *n
		clone.Children = ThreeLevel(n.Children)
		out = append(out, &clone)
	}
	return out
}
