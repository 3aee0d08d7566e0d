// Package mapping loads and validates the declarative mapping table that
// binds spreadsheet ranges to named objects in the presentation.
package mapping

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/format"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/log"
)

// TargetType selects what kind of object a mapping entry writes to
type TargetType int

const (
	// TargetShape writes into a named text shape
	TargetShape TargetType = iota
	// TargetTableCell writes into one cell of a named table
	TargetTableCell
)

func (t TargetType) String() string {
	if t == TargetTableCell {
		return "table_cell"
	}
	return "shape"
}

// Columns of the mapping table, in order
const (
	colID = iota
	colSheetRange
	colSlide
	colTargetType
	colObjectName
	colRow
	colCol
	colFormat
	colPrefix
	colSuffix
	colNotes
)

// Entry is one validated row of the mapping table. Entries are immutable
// after Load returns.
type Entry struct {
	ID         string
	SheetRange string
	SlideIndex int
	TargetType TargetType
	ObjectName string
	Row, Col   int // 1-based, zero when absent; set only for table cells
	Format     string
	Prefix     string
	Suffix     string
	Notes      string
}

// RowError records a mapping row that failed validation. Row is the 1-based
// data row index (header row excluded).
type RowError struct {
	Row    int
	ID     string
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %s", e.Row, e.ID, e.Reason)
}

// Load turns raw mapping rows into validated entries. Rows that fail
// validation are excluded from the returned entries but reported in the
// error list so they still show up in the final report; loading never
// aborts on a bad row. Fully blank rows are skipped without an error.
func Load(rows [][]string) ([]Entry, []RowError) {
	var entries []Entry
	var errs []RowError
	seen := make(map[string]int, len(rows))

	for i, row := range rows {
		rowNum := i + 1
		if isBlankRow(row) {
			continue
		}

		entry, reason := parseRow(row)
		if reason != "" {
			errs = append(errs, RowError{Row: rowNum, ID: entry.ID, Reason: reason})
			continue
		}

		if prev, dup := seen[entry.ID]; dup {
			errs = append(errs, RowError{
				Row:    rowNum,
				ID:     entry.ID,
				Reason: fmt.Sprintf("duplicate id (first used on row %d)", prev),
			})
			continue
		}
		seen[entry.ID] = rowNum

		entries = append(entries, entry)
	}

	return entries, errs
}

// parseRow builds an Entry from one raw row, returning a non-empty reason
// when the row is invalid.
func parseRow(row []string) (Entry, string) {
	entry := Entry{
		ID:         cell(row, colID),
		SheetRange: cell(row, colSheetRange),
		ObjectName: cell(row, colObjectName),
		Format:     strings.ToLower(cell(row, colFormat)),
		Prefix:     cell(row, colPrefix),
		Suffix:     cell(row, colSuffix),
		Notes:      cell(row, colNotes),
	}
	if entry.Format == "" {
		entry.Format = "text"
	} else if !format.Known(entry.Format) {
		// Unknown formats render the raw value verbatim rather than fail.
		log.Warn("mapping %q: unknown format %q, value will be written as-is", entry.ID, entry.Format)
	}

	if entry.ID == "" {
		return entry, "missing id"
	}
	if entry.SheetRange == "" {
		return entry, "missing sheet range"
	}
	if entry.ObjectName == "" {
		return entry, "missing object name"
	}

	slide, ok := parseIndex(cell(row, colSlide), 1)
	if !ok || slide < 1 {
		return entry, fmt.Sprintf("slide index %q must be a positive integer", cell(row, colSlide))
	}
	entry.SlideIndex = slide

	switch strings.ToLower(cell(row, colTargetType)) {
	case "", "shape":
		entry.TargetType = TargetShape
	case "table_cell":
		entry.TargetType = TargetTableCell
	default:
		return entry, fmt.Sprintf("unknown target type %q", cell(row, colTargetType))
	}

	r, rOK := parseIndex(cell(row, colRow), 0)
	c, cOK := parseIndex(cell(row, colCol), 0)

	if entry.TargetType == TargetTableCell {
		if !rOK || !cOK || r < 1 || c < 1 {
			return entry, "table cell target requires positive row and col"
		}
		entry.Row, entry.Col = r, c
		return entry, ""
	}

	// Shape targets ignore row/col; their presence is a warning, not fatal.
	if r > 0 || c > 0 {
		log.Warn("mapping %q: row/col are ignored for shape targets", entry.ID)
	}
	return entry, ""
}

// parseIndex parses a 1-based index cell. Spreadsheet exports may render
// integers as floats ("2.0"), so float forms are accepted and truncated.
func parseIndex(s string, def int) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Ranges collects the distinct sheet ranges of the given entries, preserving
// first-appearance order for deterministic batched fetches.
func Ranges(entries []Entry) []string {
	seen := make(map[string]bool, len(entries))
	var ranges []string
	for _, e := range entries {
		if !seen[e.SheetRange] {
			seen[e.SheetRange] = true
			ranges = append(ranges, e.SheetRange)
		}
	}
	return ranges
}
