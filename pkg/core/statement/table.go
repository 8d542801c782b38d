// Package statement locates the financial results table inside a
// quarterly statement, maps its period columns, classifies rows against
// the term dictionaries and extracts the numeric figures.
package statement

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrTableNotFound means no page carried the expected header marker.
	// Not fatal: the caller degrades to the OCR text outcome.
	ErrTableNotFound = errors.New("no table with Particulars header found")

	// ErrColumnMappingFailed means the header markers for the current or
	// annual column are missing. Not fatal: the figures stay unset.
	ErrColumnMappingFailed = errors.New("period columns could not be mapped")
)

// headerMarker is checked case-sensitively against header cells, matching
// the conventional "Particulars" row-description column of Indian
// quarterly statements.
const headerMarker = "Particulars"

// Columns holds the mapped column indices of a located table.
type Columns struct {
	Current int // column immediately right of the "Particular" cell
	Annual  int // column whose header contains "year ended"
}

// MapColumns scans the header row for the period markers. Both markers
// must be present; the mapper never guesses a default column.
func MapColumns(header []string) (Columns, error) {
	current := -1
	annual := -1

	for i, cell := range header {
		if strings.Contains(cell, "Particular") {
			current = i + 1
		}
		if strings.Contains(strings.ToLower(cell), "year ended") {
			annual = i
		}
	}

	if current < 0 || annual < 0 {
		return Columns{}, ErrColumnMappingFailed
	}
	return Columns{Current: current, Annual: annual}, nil
}

// HasHeaderMarker reports whether any cell of the row contains the exact
// "Particulars" marker.
func HasHeaderMarker(row []string) bool {
	for _, cell := range row {
		if strings.Contains(cell, headerMarker) {
			return true
		}
	}
	return false
}

// =============================================================================
// CELL VALUE PARSING
// =============================================================================

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// ParseCellValue parses a raw table cell into a number. Thousands
// separators are stripped, parenthesised values are negative, and dash or
// N/A placeholders yield nil.
//
//	"1,234.50"  → 1234.5
//	"(1,234)"   → -1234
//	"—"         → nil
func ParseCellValue(raw string) *float64 {
	raw = strings.TrimSpace(raw)

	if raw == "" || raw == "—" || raw == "-" || raw == "–" || strings.EqualFold(raw, "N/A") {
		return nil
	}

	isNegative := strings.Contains(raw, "(") && strings.Contains(raw, ")")

	cleaned := nonNumeric.ReplaceAllString(raw, "")
	if cleaned == "" || cleaned == "." || cleaned == "-" {
		return nil
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	if isNegative && value > 0 {
		value = -value
	}
	return &value
}
