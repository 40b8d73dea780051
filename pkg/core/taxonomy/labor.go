package taxonomy

import (
	"fmt"
	"strings"
)

// =============================================================================
// LABOR CLASSIFICATIONS
// Two fixed-order tables: 39 direct-labor craft classifications (DIRECTS
// sheet) and 23 indirect-labor roles (STAFF / INDIRECTS sheets). Order is a
// compatibility contract with the workbook template; codes are positional.
// =============================================================================

// Classification pairs a canonical name with its stable code.
type Classification struct {
	Code string
	Name string
}

// DirectClassifications lists the 39 craft classifications in DIRECTS row
// order. Codes DL001..DL039.
var DirectClassifications = buildClassifications("DL", []string{
	"Boilermaker A",
	"Boilermaker B",
	"Carpenter A",
	"Carpenter B",
	"Cement Finisher",
	"Electrician A",
	"Electrician B",
	"Instrument Technician A",
	"Instrument Technician B",
	"Insulator A",
	"Insulator B",
	"Ironworker Structural",
	"Ironworker Reinforcing",
	"Laborer A",
	"Laborer B",
	"Millwright A",
	"Millwright B",
	"Operator Crane",
	"Operator Heavy",
	"Operator Medium",
	"Operator Light",
	"Painter A",
	"Painter B",
	"Pipefitter A",
	"Pipefitter B",
	"Pipe Welder",
	"Structural Welder",
	"Combination Welder",
	"Rigger A",
	"Rigger B",
	"Scaffold Builder",
	"Sheet Metal Worker A",
	"Sheet Metal Worker B",
	"Sandblaster",
	"Firewatch",
	"Teamster",
	"Truck Driver",
	"Helper",
	"Apprentice",
})

// IndirectRoles lists the 23 indirect-labor roles in INDIRECTS row order.
// Codes IL001..IL023.
var IndirectRoles = buildClassifications("IL", []string{
	"Project Manager",
	"Construction Manager",
	"Site Superintendent",
	"Assistant Superintendent",
	"General Foreman",
	"Field Engineer",
	"Office Engineer",
	"Project Controls Manager",
	"Scheduler",
	"Cost Engineer",
	"Safety Manager",
	"Safety Technician",
	"QA/QC Manager",
	"QA/QC Inspector A",
	"QA/QC Inspector B",
	"Materials Coordinator",
	"Warehouse Attendant",
	"Timekeeper",
	"Field Clerk",
	"Document Controller",
	"Site Medic",
	"Surveyor",
	"Tool Room Attendant",
})

// craftVariants maps known DIRECTS spelling variants (lowercase) to the
// canonical classification name. Grown from observed workbooks; additions are
// append-only.
var craftVariants = map[string]string{
	"pipe fitter a":            "Pipefitter A",
	"pipe fitter b":            "Pipefitter B",
	"welder - pipe":            "Pipe Welder",
	"welder pipe":              "Pipe Welder",
	"welder - structural":      "Structural Welder",
	"welder structural":        "Structural Welder",
	"combo welder":             "Combination Welder",
	"crane operator":           "Operator Crane",
	"equipment operator heavy": "Operator Heavy",
	"equipment operator med":   "Operator Medium",
	"equipment operator light": "Operator Light",
	"iron worker structural":   "Ironworker Structural",
	"iron worker reinforcing":  "Ironworker Reinforcing",
	"instrument tech a":        "Instrument Technician A",
	"instrument tech b":        "Instrument Technician B",
	"scaffolder":               "Scaffold Builder",
	"sheetmetal worker a":      "Sheet Metal Worker A",
	"sheetmetal worker b":      "Sheet Metal Worker B",
	"fire watch":               "Firewatch",
	"craft helper":             "Helper",
}

// roleVariants maps known STAFF/INDIRECTS spelling variants (lowercase) to
// the canonical role name.
var roleVariants = map[string]string{
	"qa/qc inspector mech":       "QA/QC Inspector A",
	"qa/qc inspector mechanical": "QA/QC Inspector A",
	"qa/qc inspector elec":       "QA/QC Inspector B",
	"qa/qc inspector electrical": "QA/QC Inspector B",
	"project mgr":                "Project Manager",
	"const. manager":             "Construction Manager",
	"construction mgr":           "Construction Manager",
	"superintendent":             "Site Superintendent",
	"asst. superintendent":       "Assistant Superintendent",
	"asst superintendent":        "Assistant Superintendent",
	"gen. foreman":               "General Foreman",
	"project controls mgr":       "Project Controls Manager",
	"safety tech":                "Safety Technician",
	"matl. coordinator":          "Materials Coordinator",
	"material coordinator":       "Materials Coordinator",
	"warehouseman":               "Warehouse Attendant",
	"doc control":                "Document Controller",
	"document control":           "Document Controller",
	"nurse":                      "Site Medic",
	"emt":                        "Site Medic",
	"tool room":                  "Tool Room Attendant",
	"time keeper":                "Timekeeper",
}

func buildClassifications(prefix string, names []string) []Classification {
	out := make([]Classification, len(names))
	for i, name := range names {
		out[i] = Classification{
			Code: fmt.Sprintf("%s%03d", prefix, i+1),
			Name: name,
		}
	}
	return out
}

// NormalizeCraft resolves free text to a canonical DIRECTS classification,
// trying an exact case-insensitive match first and the variant table second.
func NormalizeCraft(text string) (name, code string, ok bool) {
	return normalize(text, DirectClassifications, craftVariants)
}

// NormalizeRole resolves free text to a canonical indirect-labor role.
func NormalizeRole(text string) (name, code string, ok bool) {
	return normalize(text, IndirectRoles, roleVariants)
}

func normalize(text string, table []Classification, variants map[string]string) (string, string, bool) {
	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return "", "", false
	}
	for _, c := range table {
		if strings.ToLower(c.Name) == key {
			return c.Name, c.Code, true
		}
	}
	if canonical, found := variants[key]; found {
		for _, c := range table {
			if c.Name == canonical {
				return c.Name, c.Code, true
			}
		}
	}
	return "", "", false
}

// DirectClassificationAt returns the classification at a DIRECTS row offset
// (0-based), used as the positional fallback when a label cell is blank.
func DirectClassificationAt(index int) (Classification, bool) {
	if index < 0 || index >= len(DirectClassifications) {
		return Classification{}, false
	}
	return DirectClassifications[index], true
}
