package taxonomy

import "strings"

// =============================================================================
// CONSTRUCTABILITY CATEGORIES
// The seven fixed section headers of the CONSTRUCTABILITY sheet. PRE-JOB is
// renamed for WBS purposes; the rest map onto themselves.
// =============================================================================

// ConstructabilityCategory pairs a sheet header with the name used when the
// category is carried into the WBS.
type ConstructabilityCategory struct {
	Name    string
	WBSName string
}

// ConstructabilityCategories lists the seven categories in sheet order.
var ConstructabilityCategories = []ConstructabilityCategory{
	{"PRE-JOB", "TEMPORARY FACILITIES"},
	{"CRANES & RIGGING", "CRANES & RIGGING"},
	{"SCAFFOLDING", "SCAFFOLDING"},
	{"WEATHER PROTECTION", "WEATHER PROTECTION"},
	{"ACCESS & LOGISTICS", "ACCESS & LOGISTICS"},
	{"TEMPORARY POWER", "TEMPORARY POWER"},
	{"SAFETY & ENVIRONMENTAL", "SAFETY & ENVIRONMENTAL"},
}

// MatchConstructabilityCategory reports whether a cell is one of the seven
// category headers, case-insensitively.
func MatchConstructabilityCategory(text string) (ConstructabilityCategory, bool) {
	key := strings.ToUpper(strings.TrimSpace(text))
	if key == "" {
		return ConstructabilityCategory{}, false
	}
	for _, c := range ConstructabilityCategories {
		if c.Name == key {
			return c, true
		}
	}
	return ConstructabilityCategory{}, false
}
