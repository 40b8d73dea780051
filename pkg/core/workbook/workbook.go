// Package workbook is the input boundary: it exposes a spreadsheet as named
// 2-D grids of raw cell text and owns the numeric cell normalizer every
// parser funnels values through.
package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet name constants. These are an exact-string contract with the source
// workbook template; only DISC. EQUIPMENT has a known alternate spelling.
const (
	SheetBudgets          = "BUDGETS"
	SheetStaff            = "STAFF"
	SheetDirects          = "DIRECTS"
	SheetMaterials        = "MATERIALS"
	SheetGeneralEquipment = "GENERAL EQUIPMENT"
	SheetDiscEquipment    = "DISC. EQUIPMENT"
	SheetDiscEquipmentAlt = "DISC.EQUIPMENT"
	SheetConstructability = "CONSTRUCTABILITY"
	SheetIndirects        = "INDIRECTS"
)

// Workbook exposes named sheets as raw row-major grids. Rows may be ragged;
// use Cell for bounds-checked access.
type Workbook interface {
	// Sheet returns the grid for an exact sheet name, and whether it exists.
	Sheet(name string) ([][]string, bool)
	// SheetNames lists the sheets present, in workbook order.
	SheetNames() []string
}

// FindSheet tries each candidate name in order and returns the first grid
// found. Used for DISC. EQUIPMENT's two accepted spellings.
func FindSheet(wb Workbook, names ...string) ([][]string, bool) {
	for _, name := range names {
		if grid, ok := wb.Sheet(name); ok {
			return grid, true
		}
	}
	return nil, false
}

// Cell returns the trimmed-from-nothing raw text at (row, col), or "" when
// the coordinate falls outside the (possibly ragged) grid.
func Cell(grid [][]string, row, col int) string {
	if row < 0 || row >= len(grid) {
		return ""
	}
	if col < 0 || col >= len(grid[row]) {
		return ""
	}
	return grid[row][col]
}

// =============================================================================
// XLSX-BACKED WORKBOOK
// =============================================================================

// XLSXWorkbook reads sheets from an .xlsx file via excelize. Grids are
// loaded lazily and cached; the engine reads each sheet once.
type XLSXWorkbook struct {
	file   *excelize.File
	cached map[string][][]string
}

// OpenXLSX opens a workbook file.
func OpenXLSX(path string) (*XLSXWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &XLSXWorkbook{file: f, cached: make(map[string][][]string)}, nil
}

// Sheet implements Workbook.
func (w *XLSXWorkbook) Sheet(name string) ([][]string, bool) {
	if grid, ok := w.cached[name]; ok {
		return grid, true
	}
	idx, err := w.file.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil, false
	}
	rows, err := w.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, false
	}
	w.cached[name] = rows
	return rows, true
}

// SheetNames implements Workbook.
func (w *XLSXWorkbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Close releases the underlying file.
func (w *XLSXWorkbook) Close() error {
	return w.file.Close()
}

// =============================================================================
// IN-MEMORY WORKBOOK
// =============================================================================

// MapWorkbook is an in-memory Workbook for tests and embedding callers that
// already hold the grids.
type MapWorkbook struct {
	Grids map[string][][]string
	Order []string
}

// NewMapWorkbook builds a MapWorkbook preserving insertion order via Order.
func NewMapWorkbook(grids map[string][][]string) *MapWorkbook {
	wb := &MapWorkbook{Grids: grids}
	for name := range grids {
		wb.Order = append(wb.Order, name)
	}
	return wb
}

// Sheet implements Workbook.
func (w *MapWorkbook) Sheet(name string) ([][]string, bool) {
	grid, ok := w.Grids[name]
	return grid, ok
}

// SheetNames implements Workbook.
func (w *MapWorkbook) SheetNames() []string {
	return w.Order
}
