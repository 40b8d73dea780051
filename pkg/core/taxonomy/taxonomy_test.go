package taxonomy

import "testing"

func TestTableSizes(t *testing.T) {
	// The tables are positional contracts with the workbook template.
	if len(Categories) != 12 {
		t.Errorf("Categories has %d entries, want 12", len(Categories))
	}
	if len(Categories) != BlockSize {
		t.Errorf("BlockSize = %d, must equal len(Categories) = %d", BlockSize, len(Categories))
	}
	if len(DirectClassifications) != 39 {
		t.Errorf("DirectClassifications has %d entries, want 39", len(DirectClassifications))
	}
	if len(IndirectRoles) != 23 {
		t.Errorf("IndirectRoles has %d entries, want 23", len(IndirectRoles))
	}
	if len(Phases) != 4 {
		t.Errorf("Phases has %d entries, want 4", len(Phases))
	}
	if len(ConstructabilityCategories) != 7 {
		t.Errorf("ConstructabilityCategories has %d entries, want 7", len(ConstructabilityCategories))
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		label string
		code  string
		ok    bool
	}{
		{"DIRECT LABOR", "DL", true},
		{"direct labor", "DL", true},
		{"  Materials  ", "MA", true},
		{"DISCIPLINE TOTALS", "DT", true},
		{"FREIGHT", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		code, ok := NormalizeCategory(tt.label)
		if code != tt.code || ok != tt.ok {
			t.Errorf("NormalizeCategory(%q) = (%q, %v), want (%q, %v)", tt.label, code, ok, tt.code, tt.ok)
		}
	}
}

func TestNormalizeRoleVariants(t *testing.T) {
	tests := []struct {
		text string
		name string
		code string
	}{
		{"QA/QC Inspector A", "QA/QC Inspector A", "IL014"},
		{"QA/QC Inspector Mech", "QA/QC Inspector A", "IL014"},
		{"qa/qc inspector mech", "QA/QC Inspector A", "IL014"},
		{"QA/QC INSPECTOR MECHANICAL", "QA/QC Inspector A", "IL014"},
		{"Superintendent", "Site Superintendent", "IL003"},
		{"warehouseman", "Warehouse Attendant", "IL017"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			name, code, ok := NormalizeRole(tt.text)
			if !ok {
				t.Fatalf("NormalizeRole(%q) did not resolve", tt.text)
			}
			if name != tt.name || code != tt.code {
				t.Errorf("NormalizeRole(%q) = (%q, %q), want (%q, %q)", tt.text, name, code, tt.name, tt.code)
			}
		})
	}

	if _, _, ok := NormalizeRole("Chief Vibes Officer"); ok {
		t.Error("unexpected resolution for unknown role")
	}
}

func TestNormalizeCraftVariants(t *testing.T) {
	name, code, ok := NormalizeCraft("Pipe Fitter A")
	if !ok || name != "Pipefitter A" || code != "DL024" {
		t.Errorf("NormalizeCraft(Pipe Fitter A) = (%q, %q, %v)", name, code, ok)
	}

	name, code, ok = NormalizeCraft("crane operator")
	if !ok || name != "Operator Crane" || code != "DL018" {
		t.Errorf("NormalizeCraft(crane operator) = (%q, %q, %v)", name, code, ok)
	}
}

func TestMatchPhase(t *testing.T) {
	tests := []struct {
		text string
		code string
		ok   bool
	}{
		{"JOB SET-UP", "P1", true},
		{"Job Set Up - Mobilization", "P1", true},
		{"PRE-WORK", "P2", true},
		{"Project Execution", "P3", true},
		{"JOB CLOSEOUT", "P4", true},
		{"Project Manager", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		phase, ok := MatchPhase(tt.text)
		if ok != tt.ok || phase.Code != tt.code {
			t.Errorf("MatchPhase(%q) = (%q, %v), want (%q, %v)", tt.text, phase.Code, ok, tt.code, tt.ok)
		}
	}
}

func TestMatchConstructabilityCategory(t *testing.T) {
	cat, ok := MatchConstructabilityCategory("pre-job")
	if !ok {
		t.Fatal("PRE-JOB did not match")
	}
	if cat.WBSName != "TEMPORARY FACILITIES" {
		t.Errorf("PRE-JOB WBS name = %q, want TEMPORARY FACILITIES", cat.WBSName)
	}

	if _, ok := MatchConstructabilityCategory("PERMANENT WORKS"); ok {
		t.Error("unexpected category match")
	}
}

func TestParentGroups(t *testing.T) {
	pg := NewParentGroups()

	if got := pg.Parent("PIPING"); got != "MECHANICAL" {
		t.Errorf("Parent(PIPING) = %q, want MECHANICAL", got)
	}
	if got := pg.Parent("piping "); got != "MECHANICAL" {
		t.Errorf("Parent is not case/space tolerant: %q", got)
	}
	if got := pg.Parent("UNDERWATER BASKET WEAVING"); got != "UNGROUPED" {
		t.Errorf("unknown discipline = %q, want UNGROUPED", got)
	}
	if pg.Known("UNDERWATER BASKET WEAVING") {
		t.Error("Known() should be false for unmapped disciplines")
	}
}
