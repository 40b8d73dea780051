package taxonomy

import (
	"fmt"
	"os"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
)

// =============================================================================
// DISCIPLINE PARENT GROUPING
// A loose classification collaborator: maps discipline names to a reporting
// parent group. Maintained separately from the BUDGETS discipline list and
// never consulted by the WBS generator; an override file may name disciplines
// no workbook mentions.
// =============================================================================

// defaultParentGroups is the built-in discipline -> parent mapping.
var defaultParentGroups = map[string]string{
	"PIPING":          "MECHANICAL",
	"STEEL":           "MECHANICAL",
	"EQUIPMENT":       "MECHANICAL",
	"FABRICATION":     "MECHANICAL",
	"ELECTRICAL":      "ELECTRICAL & CONTROLS",
	"INSTRUMENTATION": "ELECTRICAL & CONTROLS",
	"CIVIL":           "CIVIL & STRUCTURAL",
	"CONCRETE":        "CIVIL & STRUCTURAL",
	"STRUCTURAL":      "CIVIL & STRUCTURAL",
	"INSULATION":      "COATINGS & COVERINGS",
	"PAINTING":        "COATINGS & COVERINGS",
	"SCAFFOLDING":     "SITE SERVICES",
	"GENERAL":         "SITE SERVICES",
}

// ParentGroups resolves discipline names to their reporting parent.
type ParentGroups struct {
	groups map[string]string
}

// NewParentGroups returns the built-in mapping.
func NewParentGroups() *ParentGroups {
	groups := make(map[string]string, len(defaultParentGroups))
	for k, v := range defaultParentGroups {
		groups[k] = v
	}
	return &ParentGroups{groups: groups}
}

// LoadParentGroups reads a human-maintained overrides file (hjson, so the
// file can carry comments) and layers it over the built-in mapping.
func LoadParentGroups(path string) (*ParentGroups, error) {
	pg := NewParentGroups()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parent groups file: %w", err)
	}

	var overrides map[string]string
	if err := hjson.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse parent groups file: %w", err)
	}

	for discipline, parent := range overrides {
		pg.groups[strings.ToUpper(strings.TrimSpace(discipline))] = strings.ToUpper(strings.TrimSpace(parent))
	}
	return pg, nil
}

// Parent returns the parent group for a discipline name. Unmapped
// disciplines fall into "UNGROUPED" so downstream grouping never drops a
// cost center.
func (p *ParentGroups) Parent(discipline string) string {
	if parent, ok := p.groups[strings.ToUpper(strings.TrimSpace(discipline))]; ok {
		return parent
	}
	return "UNGROUPED"
}

// Known reports whether the discipline has an explicit mapping.
func (p *ParentGroups) Known(discipline string) bool {
	_, ok := p.groups[strings.ToUpper(strings.TrimSpace(discipline))]
	return ok
}
