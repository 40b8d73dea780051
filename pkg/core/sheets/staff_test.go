package sheets

import (
	"math"
	"strings"
	"testing"
)

// staffRow builds one STAFF grid row: description col 1, manhours col 4,
// cost col 6, per-diem col 7.
func staffRow(desc, manhours, cost, perDiem string) []string {
	return []string{"", desc, "", "", manhours, "", cost, perDiem}
}

func staffGrid() [][]string {
	return [][]string{
		{"STAFFING PLAN"},
		{},
		staffRow("JOB SET-UP", "", "", ""),
		staffRow("Project Manager", "160", "24000", "2400"),
		staffRow("Field Engineer", "160", "14400", "2400"),
		staffRow("PRE-WORK", "", "", ""),
		staffRow("Site Superintendent", "80", "9600", "1200"),
		staffRow("PROJECT EXECUTION", "", "", ""),
		staffRow("Project Manager", "1040", "156000", "15600"),
		staffRow("QA/QC Inspector Mech", "1040", "88400", "15600"),
		staffRow("JOB CLOSE-OUT", "", "", ""),
		staffRow("Field Clerk", "120", "6600", "1800"),
	}
}

func TestStaffPhaseAttribution(t *testing.T) {
	result := NewStaffParser().Parse(staffGrid(), 12000)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Phases) != 4 {
		t.Fatalf("expected 4 phases, got %d", len(result.Phases))
	}

	wantTotals := map[string]float64{
		"P1": 38400,
		"P2": 9600,
		"P3": 244400,
		"P4": 6600,
	}
	for _, phase := range result.Phases {
		if math.Abs(phase.Total-wantTotals[phase.Code]) > 1e-9 {
			t.Errorf("phase %s total = %.2f, want %.2f", phase.Code, phase.Total, wantTotals[phase.Code])
		}
	}

	phaseSum := 38400.0 + 9600 + 244400 + 6600
	if math.Abs(result.PhaseTotal-phaseSum) > 1e-9 {
		t.Errorf("phase total = %.2f, want %.2f", result.PhaseTotal, phaseSum)
	}
	// Total indirect labor folds in the BUDGETS add-ons.
	if math.Abs(result.Total-(phaseSum+12000)) > 1e-9 {
		t.Errorf("total = %.2f, want %.2f", result.Total, phaseSum+12000)
	}

	wantPerDiem := 2400.0 + 2400 + 1200 + 15600 + 15600 + 1800
	if math.Abs(result.PerDiem-wantPerDiem) > 1e-9 {
		t.Errorf("per diem = %.2f, want %.2f", result.PerDiem, wantPerDiem)
	}
}

func TestStaffRoleVariantMapping(t *testing.T) {
	result := NewStaffParser().Parse(staffGrid(), 0)

	var found *RoleLine
	for _, phase := range result.Phases {
		for i := range phase.Roles {
			if phase.Roles[i].Code == "IL014" {
				found = &phase.Roles[i]
			}
		}
	}
	if found == nil {
		t.Fatal("QA/QC Inspector Mech did not resolve to IL014")
	}
	if found.Role != "QA/QC Inspector A" {
		t.Errorf("role = %q, want QA/QC Inspector A", found.Role)
	}
}

func TestStaffUnknownRoleStillBooked(t *testing.T) {
	grid := [][]string{
		{}, {},
		staffRow("PROJECT EXECUTION", "", "", ""),
		staffRow("Vibe Coordinator", "100", "5000", ""),
	}

	result := NewStaffParser().Parse(grid, 0)
	if math.Abs(result.PhaseTotal-5000) > 1e-9 {
		t.Errorf("unknown role's cost must survive: phase total = %.2f", result.PhaseTotal)
	}

	foundWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "unknown role: Vibe Coordinator") {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Errorf("expected unknown-role warning, got %v", result.Warnings)
	}
}

func TestStaffPerDiemOnlyRowBooksNoRole(t *testing.T) {
	grid := [][]string{
		{}, {},
		staffRow("PROJECT EXECUTION", "", "", ""),
		staffRow("Scheduler", "100", "9000", "1500"),
		staffRow("Field Clerk", "40", "0", "300"), // Per diem, no labor cost
	}

	result := NewStaffParser().Parse(grid, 0)
	if math.Abs(result.PerDiem-1800) > 1e-9 {
		t.Errorf("per diem = %.2f, want 1800", result.PerDiem)
	}
	if len(result.Phases) != 1 || len(result.Phases[0].Roles) != 1 {
		t.Fatalf("phases = %+v", result.Phases)
	}
	if result.Phases[0].Roles[0].Role != "Scheduler" {
		t.Errorf("role = %q, the costless row must not book a line", result.Phases[0].Roles[0].Role)
	}
	if math.Abs(result.PhaseTotal-9000) > 1e-9 {
		t.Errorf("phase total = %.2f, want 9000", result.PhaseTotal)
	}
}

func TestStaffNoPhases(t *testing.T) {
	grid := [][]string{
		{}, {},
		staffRow("Project Manager", "", "", ""), // No cost, no phases
	}

	result := NewStaffParser().Parse(grid, 0)
	if len(result.Errors) != 1 || result.Errors[0] != "no phase markers found" {
		t.Errorf("errors = %v", result.Errors)
	}
}

func TestStaffCostBeforeMarker(t *testing.T) {
	grid := [][]string{
		{}, {},
		staffRow("Project Manager", "100", "15000", ""),
		staffRow("PROJECT EXECUTION", "", "", ""),
		staffRow("Scheduler", "100", "9000", ""),
	}

	result := NewStaffParser().Parse(grid, 0)
	// The pre-marker cost is attributed to PROJECT EXECUTION, never dropped.
	if math.Abs(result.PhaseTotal-24000) > 1e-9 {
		t.Errorf("phase total = %.2f, want 24000", result.PhaseTotal)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for cost before the first phase marker")
	}
}
