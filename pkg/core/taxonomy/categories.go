// Package taxonomy holds the controlled vocabularies the parsers normalize
// against: the twelve budget categories, the direct-labor classifications,
// the indirect-labor roles (with known spelling variants), the execution
// phases, and the discipline parent grouping. All tables are process-wide
// constant data; nothing here mutates after init.
package taxonomy

import "strings"

// =============================================================================
// BUDGET CATEGORIES
// The twelve rows of a BUDGETS discipline block, in sheet order.
// =============================================================================

// Category pairs the exact sheet label with its canonical code.
type Category struct {
	Label string
	Code  string
}

// Categories lists the twelve categories in the fixed block order.
var Categories = []Category{
	{"DIRECT LABOR", "DL"},
	{"INDIRECT LABOR", "IL"},
	{"ALL LABOR", "AL"},
	{"TAXES & INSURANCE", "TI"},
	{"PER DIEM", "PD"},
	{"ADD-ONS", "AO"},
	{"SMALL TOOLS & CONSUMABLES", "ST"},
	{"MATERIALS", "MA"},
	{"EQUIPMENT", "EQ"},
	{"SUBCONTRACTS", "SC"},
	{"RISK", "RK"},
	{"DISCIPLINE TOTALS", "DT"},
}

// BlockSize is the number of rows in one BUDGETS discipline block, one per
// category. Must equal len(Categories).
const BlockSize = 12

// NormalizeCategory maps a raw cell label to its canonical code.
// Matching is case-insensitive on the trimmed label.
func NormalizeCategory(label string) (code string, ok bool) {
	key := strings.ToUpper(strings.TrimSpace(label))
	for _, c := range Categories {
		if c.Label == key {
			return c.Code, true
		}
	}
	return "", false
}

// CategoryLabel returns the sheet label for a code ("DL" -> "DIRECT LABOR").
func CategoryLabel(code string) string {
	for _, c := range Categories {
		if c.Code == code {
			return c.Label
		}
	}
	return ""
}

// =============================================================================
// EXECUTION PHASES
// The four STAFF sheet phase markers, in chronological order.
// =============================================================================

// Phase pairs a phase name with its stable code and the marker fragments the
// STAFF parser matches against a description cell.
type Phase struct {
	Code    string
	Name    string
	Markers []string // Lowercase fragments; any match flags the row as a marker
}

// Phases lists the four phases in execution order.
var Phases = []Phase{
	{"P1", "JOB SET-UP", []string{"job set-up", "job set up", "job setup"}},
	{"P2", "PRE-WORK", []string{"pre-work", "pre work", "prework"}},
	{"P3", "PROJECT EXECUTION", []string{"project execution"}},
	{"P4", "JOB CLOSE-OUT", []string{"job close-out", "job close out", "job closeout"}},
}

// MatchPhase reports whether a description cell is a phase marker.
func MatchPhase(text string) (Phase, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return Phase{}, false
	}
	for _, p := range Phases {
		for _, m := range p.Markers {
			if strings.Contains(lower, m) {
				return p, true
			}
		}
	}
	return Phase{}, false
}
