package sheets

import (
	"fmt"
	"log"
	"strings"

	"budget_engine/pkg/core/taxonomy"
	"budget_engine/pkg/core/workbook"
)

// STAFF sheet layout. Description/role col doubles as the phase marker cell.
const (
	staffRowFirst    = 2
	staffColRole     = 1
	staffColManhours = 4
	staffColCost     = 6
	staffColPerDiem  = 7
)

// StaffParser parses the STAFF sheet: indirect labor broken into the four
// execution phases. Rows following a phase marker belong to that phase until
// the next marker.
type StaffParser struct{}

// NewStaffParser creates the parser.
func NewStaffParser() *StaffParser {
	return &StaffParser{}
}

// Parse reads the grid. addOns is the BUDGETS-derived add-ons total folded
// into the sheet total; the reconciliation in the validator backs it out
// again, so it must come from the same source the targets do.
func (p *StaffParser) Parse(grid [][]string, addOns float64) *StaffResult {
	result := &StaffResult{AddOns: addOns}

	var current *PhaseBreakdown
	for row := staffRowFirst; row < len(grid); row++ {
		desc := workbook.Cell(grid, row, staffColRole)

		if phase, ok := taxonomy.MatchPhase(desc); ok {
			result.Phases = append(result.Phases, PhaseBreakdown{
				Code:  phase.Code,
				Phase: phase.Name,
			})
			current = &result.Phases[len(result.Phases)-1]
			continue
		}

		cost := workbook.ParseCellValue(workbook.Cell(grid, row, staffColCost))
		perDiem := workbook.ParseCellValue(workbook.Cell(grid, row, staffColPerDiem))
		if cost == 0 && perDiem == 0 {
			continue
		}
		result.PerDiem += perDiem
		if cost == 0 {
			// Per-diem-only row: the per diem is booked above, but a role
			// line carries labor cost and this row has none.
			continue
		}
		if current == nil {
			// Cost before any phase marker: book it against nothing is not an
			// option, money must survive. Attribute to PROJECT EXECUTION.
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("row %d carries cost before any phase marker", row))
			result.Phases = append(result.Phases, PhaseBreakdown{Code: "P3", Phase: "PROJECT EXECUTION"})
			current = &result.Phases[len(result.Phases)-1]
		}

		line := RoleLine{
			Role:     strings.TrimSpace(desc),
			Manhours: workbook.ParseCellValue(workbook.Cell(grid, row, staffColManhours)),
			Cost:     cost,
			Row:      row,
		}
		if name, code, ok := taxonomy.NormalizeRole(desc); ok {
			line.Role = name
			line.Code = code
		} else if line.Role != "" {
			result.Warnings = append(result.Warnings, "unknown role: "+line.Role)
		}

		current.Roles = append(current.Roles, line)
		current.Manhours += line.Manhours
		current.Total += line.Cost
	}

	for _, ph := range result.Phases {
		result.PhaseTotal += ph.Total
	}
	result.Total = result.PhaseTotal + result.AddOns

	if len(result.Phases) == 0 {
		result.Errors = append(result.Errors, "no phase markers found")
	} else if len(result.Phases) != len(taxonomy.Phases) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("expected %d phases, found %d", len(taxonomy.Phases), len(result.Phases)))
	}

	log.Printf("[StaffParser] SUMMARY: phases=%d phase_total=%.2f per_diem=%.2f add_ons=%.2f",
		len(result.Phases), result.PhaseTotal, result.PerDiem, result.AddOns)
	return result
}
