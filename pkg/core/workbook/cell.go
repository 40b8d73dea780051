package workbook

import (
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// NUMERIC CELL NORMALIZER
// The single point where malformed numeric input degrades to zero instead of
// failing the run. Never returns an error.
// =============================================================================

var nonNumericPattern = regexp.MustCompile(`[^0-9.\-]`)

// ParseCellValue converts raw cell text into a float.
// Handles:
//
//	"$1,234.56"  -> 1234.56
//	"(1,234)"    -> -1234  (parentheses = negative)
//	"" / "-" / garbage -> 0
func ParseCellValue(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "-" || raw == "—" || raw == "–" {
		return 0
	}

	isNegative := strings.Contains(raw, "(") && strings.Contains(raw, ")")

	cleaned := nonNumericPattern.ReplaceAllString(raw, "")
	if cleaned == "" || cleaned == "." || cleaned == "-" {
		return 0
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}

	if isNegative && value > 0 {
		value = -value
	}
	return value
}

// IsNumericCell reports whether the raw text parses as a number at all.
// Used by block-start detection, where "numeric" and "zero" must not be
// conflated.
func IsNumericCell(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	cleaned := nonNumericPattern.ReplaceAllString(raw, "")
	if cleaned == "" || cleaned == "." || cleaned == "-" {
		return false
	}
	_, err := strconv.ParseFloat(cleaned, 64)
	return err == nil
}
